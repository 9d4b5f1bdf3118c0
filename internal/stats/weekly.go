package stats

import (
	"github.com/varadha/habitd/internal/domain"
)

// WeekSummary aggregates exactly seven daily records, oldest first with the
// last record being today. All derived fields consider active days only;
// when ActiveDays is zero every derived field is its zero value and callers
// must check HasData before using them.
type WeekSummary struct {
	Records []domain.DailyRecord

	ActiveDays   int
	TotalMinutes int
	AvgPct       float64

	BestDay  domain.DailyRecord
	WorstDay domain.DailyRecord

	// HabitCounts maps habit name to the number of active days it was
	// logged on.
	HabitCounts map[string]int

	// MostConsistent and LeastDone break frequency ties by catalog order:
	// the first matching habit wins.
	MostConsistent string
	LeastDone      string

	// NeedsWork lists habits logged on at most one active day, in
	// first-seen order, capped at three entries.
	NeedsWork []string
}

// HasData reports whether the week had any active days.
func (s WeekSummary) HasData() bool {
	return s.ActiveDays > 0
}

// Summarize builds a WeekSummary from seven daily records. catalogOrder
// supplies the tie-break ordering for habit frequency comparisons; habits
// not present in catalogOrder are ignored.
func Summarize(records []domain.DailyRecord, catalogOrder []string) WeekSummary {
	s := WeekSummary{
		Records:     records,
		HabitCounts: map[string]int{},
	}

	var pctSum float64
	first := true
	for _, r := range records {
		if !r.Active() {
			continue
		}
		s.ActiveDays++
		s.TotalMinutes += r.Total
		pctSum += r.Percentage

		if first || r.Percentage > s.BestDay.Percentage {
			s.BestDay = r
		}
		if first || r.Percentage < s.WorstDay.Percentage {
			s.WorstDay = r
		}
		first = false

		for name := range r.Habits {
			s.HabitCounts[name]++
		}
	}

	if s.ActiveDays == 0 {
		return s
	}

	s.AvgPct = pctSum / float64(s.ActiveDays)

	best, worst := -1, -1
	for _, name := range catalogOrder {
		count, logged := s.HabitCounts[name]
		if !logged {
			continue
		}
		if best == -1 || count > best {
			best = count
			s.MostConsistent = name
		}
		if worst == -1 || count < worst {
			worst = count
			s.LeastDone = name
		}
	}

	// Needs-work habits in first-seen order across the week.
	seen := map[string]bool{}
	for _, r := range records {
		if !r.Active() {
			continue
		}
		for _, name := range catalogOrder {
			if _, logged := r.Habits[name]; !logged || seen[name] {
				continue
			}
			seen[name] = true
			if s.HabitCounts[name] <= 1 && len(s.NeedsWork) < 3 {
				s.NeedsWork = append(s.NeedsWork, name)
			}
		}
	}

	return s
}
