package sheets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/dateutil"
	"github.com/varadha/habitd/internal/domain"
	"github.com/varadha/habitd/internal/stats"
)

// ErrRowNotFound means no sheet row carries the requested date. The sheet
// is pre-populated with dated rows; a missing row is a setup problem for
// today but an expected off-day signal when reading history.
var ErrRowNotFound = errors.New("no sheet row for date")

// Sheet column slots, zero-based from column A. Habit slots come from the
// catalog (C=2 through M=12).
const (
	dateColumn    = 0
	totalColumn   = 13
	percentColumn = 14
)

// Store reads and writes daily habit rows using the sheet layout:
// date, day name, one cell per habit, total minutes, percentage.
type Store struct {
	client *Client
	cat    *catalog.Catalog
}

// NewStore wraps a Sheets client with the row layout defined by cat.
func NewStore(client *Client, cat *catalog.Catalog) *Store {
	return &Store{client: client, cat: cat}
}

// FindRowForDate scans the date column for the row holding date. Row
// numbers are 1-based, as in A1 notation.
func (s *Store) FindRowForDate(ctx context.Context, date time.Time) (int, error) {
	column, err := s.client.getValues(ctx, s.rangeName("A:A"))
	if err != nil {
		return 0, err
	}
	return s.findRow(column, date)
}

func (s *Store) findRow(dateColumnValues [][]any, date time.Time) (int, error) {
	want := dateutil.SheetDate(date)
	for i, row := range dateColumnValues {
		if len(row) > 0 && strings.TrimSpace(cellString(row[dateColumn])) == want {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrRowNotFound, want)
}

// WriteHabits merges habits into date's row and rewrites the habit cells
// plus the derived total and percentage. Cells for habits not in the map
// keep their existing values, so logging is incremental through the day.
func (s *Store) WriteHabits(ctx context.Context, date time.Time, habits map[string]int) (domain.WriteResult, error) {
	row, err := s.FindRowForDate(ctx, date)
	if err != nil {
		return domain.WriteResult{}, err
	}

	existing, err := s.readRow(ctx, row)
	if err != nil {
		return domain.WriteResult{}, err
	}

	out := make([]any, percentColumn-2+1) // C through O
	merged := make(map[string]int, len(habits))
	for _, h := range s.cat.Habits {
		slot := h.Column - 2
		if v, ok := habits[h.Name]; ok {
			out[slot] = v
			merged[h.Name] = v
			continue
		}
		if v, ok := cellInt(existing[h.Column]); ok {
			out[slot] = v
			merged[h.Name] = v
			continue
		}
		// Preserve whatever non-numeric content the cell held.
		out[slot] = cellString(existing[h.Column])
	}

	total, pct := stats.DailyScore(merged, s.cat.DailyTarget())
	out[totalColumn-2] = total
	out[percentColumn-2] = fmt.Sprintf("%.2f%%", pct)

	rangeA1 := s.rangeName(fmt.Sprintf("C%d:O%d", row, row))
	if err := s.client.updateValues(ctx, rangeA1, [][]any{out}); err != nil {
		return domain.WriteResult{}, err
	}

	return domain.WriteResult{TotalMinutes: total, Percentage: pct, Row: row}, nil
}

// ReadHabits returns the habits logged on date. An empty map means the row
// exists but nothing numeric has been logged yet.
func (s *Store) ReadHabits(ctx context.Context, date time.Time) (map[string]int, error) {
	row, err := s.FindRowForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	cells, err := s.readRow(ctx, row)
	if err != nil {
		return nil, err
	}
	return s.habitCells(cells), nil
}

// ReadWeek builds one DailyRecord per date. Missing rows and rows whose
// first habit cell holds a day-level note (SICK, HOLIDAY) come back as off
// days; everything else carries the logged habits and derived totals.
func (s *Store) ReadWeek(ctx context.Context, dates []time.Time) ([]domain.DailyRecord, error) {
	column, err := s.client.getValues(ctx, s.rangeName("A:A"))
	if err != nil {
		return nil, err
	}

	records := make([]domain.DailyRecord, 0, len(dates))
	for _, date := range dates {
		rec := domain.DailyRecord{
			Date: dateutil.SheetDate(date),
			Day:  dateutil.DayName(date),
		}

		row, err := s.findRow(column, date)
		if errors.Is(err, ErrRowNotFound) {
			rec.IsOffDay = true
			records = append(records, rec)
			continue
		}
		if err != nil {
			return nil, err
		}

		cells, err := s.readRow(ctx, row)
		if err != nil {
			return nil, err
		}

		firstHabit := s.cat.Habits[0]
		if note := strings.TrimSpace(cellString(cells[firstHabit.Column])); note != "" {
			if _, numeric := cellInt(cells[firstHabit.Column]); !numeric {
				rec.IsOffDay = true
				rec.Note = note
				records = append(records, rec)
				continue
			}
		}

		rec.Habits = s.habitCells(cells)
		rec.Total, rec.Percentage = stats.DailyScore(rec.Habits, s.cat.DailyTarget())
		records = append(records, rec)
	}
	return records, nil
}

// readRow fetches row's cells from A through O, padded to full width so
// callers can index by column slot without bounds checks.
func (s *Store) readRow(ctx context.Context, row int) ([]any, error) {
	values, err := s.client.getValues(ctx, s.rangeName(fmt.Sprintf("A%d:O%d", row, row)))
	if err != nil {
		return nil, err
	}
	cells := make([]any, percentColumn+1)
	if len(values) > 0 {
		copy(cells, values[0])
	}
	return cells, nil
}

func (s *Store) habitCells(cells []any) map[string]int {
	habits := make(map[string]int)
	for _, h := range s.cat.Habits {
		if v, ok := cellInt(cells[h.Column]); ok {
			habits[h.Name] = v
		}
	}
	return habits
}

func (s *Store) rangeName(ref string) string {
	return fmt.Sprintf("'%s'!%s", s.client.cfg.SheetName, ref)
}

// cellString renders a sheet cell as text. The API returns formatted values
// as strings, but be tolerant of raw numbers.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// cellInt parses a cell as whole minutes. Empty cells and day-level notes
// are not numeric.
func cellInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(math.Round(x)), true
	case string:
		t := strings.TrimSpace(x)
		if t == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	default:
		return 0, false
	}
}
