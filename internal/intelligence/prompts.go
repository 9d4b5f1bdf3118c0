package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/stats"
)

// buildParseSystemPrompt renders the habit extraction instructions from the
// live catalog so the model always sees the habits, defaults, aliases and
// compound rules actually configured.
func buildParseSystemPrompt(cat *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString(`You are a habit tracking assistant. Parse the user's natural language
message into a structured JSON object mapping habit names to minutes spent.

Available habits and their default durations:
`)
	for _, h := range cat.Habits {
		fmt.Fprintf(&b, "- %s: %d min", h.Name, h.DefaultMin)
		if len(h.Aliases) > 0 {
			fmt.Fprintf(&b, " (aliases: %s)", strings.Join(h.Aliases, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nShortcut phrases:\n")
	compounds := make([]string, 0, len(cat.CompoundAliases))
	for alias := range cat.CompoundAliases {
		compounds = append(compounds, alias)
	}
	sort.Strings(compounds)
	for _, alias := range compounds {
		parts := make([]string, 0, len(cat.CompoundAliases[alias]))
		for _, name := range cat.CompoundAliases[alias] {
			h, _ := cat.ByName(name)
			parts = append(parts, fmt.Sprintf("%s (%d)", h.Name, h.DefaultMin))
		}
		fmt.Fprintf(&b, "- %q means %s\n", alias, strings.Join(parts, " + "))
	}

	b.WriteString(`
Rules:
1. If a habit is mentioned WITHOUT a specific time, use its default duration
2. Return ONLY valid JSON in this exact format: {"habits": {"Habit Name": minutes, ...}}
3. Only include habits that were explicitly mentioned or implied
4. Times must be integers (minutes)
5. If the user says a time like "1 hour" or "1.5 hrs", convert to minutes, rounding to the nearest whole minute
6. If the user mentions "everything" or "all", include all habits at default durations
7. Do NOT include any explanation, just the JSON object
`)

	return b.String()
}

// recommendSystemPrompt instructs the model to act as a concise habit coach.
const recommendSystemPrompt = `You are a concise personal habit coach. Given 7 days of habit tracking data,
provide exactly 3 crisp, actionable recommendations for the next week.

Rules:
1. Each recommendation must be under 100 characters
2. Be specific and reference actual habits from the data
3. Focus on: consistency gaps, building streaks, and linking habits together
4. Don't be generic - use the actual numbers and patterns you see
5. Return ONLY the 3 recommendations as a numbered list, nothing else
`

// buildWeekPrompt renders the week's data as a readable summary for the
// coaching model: one line per day plus aggregate statistics.
func buildWeekPrompt(week stats.WeekSummary, dailyTarget int) string {
	var b strings.Builder

	for _, r := range week.Records {
		switch {
		case r.IsOffDay:
			note := r.Note
			if note == "" {
				note = "No data"
			}
			fmt.Fprintf(&b, "%s (%s): OFF - %s\n", r.Day, r.Date, note)
		case len(r.Habits) > 0:
			entries := make([]string, 0, len(r.Habits))
			names := make([]string, 0, len(r.Habits))
			for name := range r.Habits {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				entries = append(entries, fmt.Sprintf("%s: %dmin", name, r.Habits[name]))
			}
			fmt.Fprintf(&b, "%s (%s): %s | Total: %dmin (%.1f%%)\n",
				r.Day, r.Date, strings.Join(entries, ", "), r.Total, r.Percentage)
		default:
			fmt.Fprintf(&b, "%s (%s): No habits logged\n", r.Day, r.Date)
		}
	}

	if week.HasData() {
		fmt.Fprintf(&b, "\nWeek Stats: %d active days, Avg: %.1f%%, Best: %s (%.1f%%), Worst: %s (%.1f%%)\n",
			week.ActiveDays, week.AvgPct,
			week.BestDay.Day, week.BestDay.Percentage,
			week.WorstDay.Day, week.WorstDay.Percentage)
		fmt.Fprintf(&b, "Most consistent: %s (%d/%d days)\n",
			week.MostConsistent, week.HabitCounts[week.MostConsistent], week.ActiveDays)
		fmt.Fprintf(&b, "Least done: %s (%d/%d days)\n",
			week.LeastDone, week.HabitCounts[week.LeastDone], week.ActiveDays)
	} else {
		b.WriteString("\nNo active days this week.\n")
	}

	fmt.Fprintf(&b, "Daily target: %d mins", dailyTarget)

	return b.String()
}
