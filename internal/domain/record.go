// Package domain holds the plain data types shared across the tracker:
// daily records as read back from the sheet and the results of writes.
package domain

// DailyRecord is one day's worth of tracking data, derived from the sheet
// row for that date. It is never persisted as a unit; only its constituent
// cells live in the sheet.
type DailyRecord struct {
	// Date is the sheet-formatted date string (D-Mon-YYYY).
	Date string
	// Day is the full weekday name.
	Day string
	// Habits maps habit name to logged minutes. Habits absent from the map
	// were not logged that day.
	Habits map[string]int
	// Total is the sum of all numeric entries.
	Total int
	// Percentage is Total over the daily target, times 100. Not clamped;
	// over-achievement is visible.
	Percentage float64
	// IsOffDay is true when no sheet row exists for the date or the row
	// carries a day-level note such as SICK or HOLIDAY.
	IsOffDay bool
	// Note holds the day-level marker for off days, when present.
	Note string
}

// Active reports whether the day counts toward weekly statistics: not an
// off day and at least one habit logged.
func (r DailyRecord) Active() bool {
	return !r.IsOffDay && len(r.Habits) > 0
}

// WriteResult describes a successful habit write to the sheet.
type WriteResult struct {
	TotalMinutes int
	Percentage   float64
	Row          int
}
