// Package dateutil handles the tracker's timezone and the date formats used
// by the tracking sheet.
package dateutil

import (
	"fmt"
	"time"
)

// DefaultTimezone is the IANA name of the tracker's home timezone.
const DefaultTimezone = "Asia/Kolkata"

// sheetDateLayout matches the sheet's date column: D-Mon-YYYY with no
// leading zero on the day (e.g. "24-Jan-2026", "2-Feb-2026").
const sheetDateLayout = "2-Jan-2006"

// LoadLocation resolves an IANA timezone name, defaulting to Asia/Kolkata
// when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// Today returns the current date in loc, truncated to midnight.
func Today(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// SheetDate formats a date the way the sheet's date column stores it.
func SheetDate(t time.Time) string {
	return t.Format(sheetDateLayout)
}

// ParseSheetDate parses a sheet date cell back into a time in loc.
func ParseSheetDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(sheetDateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing sheet date %q: %w", s, err)
	}
	return t, nil
}

// DayName returns the full weekday name ("Monday").
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// ShortDayDate returns a display label like "Friday, 24-Jan".
func ShortDayDate(t time.Time) string {
	return fmt.Sprintf("%s, %s", DayName(t), t.Format("2-Jan"))
}

// PastNDays returns the n dates ending at today inclusive, oldest first.
func PastNDays(today time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	return dates
}
