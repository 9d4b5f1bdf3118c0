package report

import (
	"fmt"
	"strings"

	"github.com/varadha/habitd/internal/stats"
)

// NoDataMessage is the fixed weekly report body when the week had no
// active days.
const NoDataMessage = "No habits logged this week. Let's start fresh next week!"

// FormatWeeklyReport renders the weekly summary plus coaching
// recommendations into one WhatsApp message.
func FormatWeeklyReport(week stats.WeekSummary, recommendations string) string {
	if !week.HasData() {
		return NoDataMessage
	}

	start := week.Records[0].Date
	end := week.Records[len(week.Records)-1].Date

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly Report (%s to %s):\n\n", start, end)
	fmt.Fprintf(&b, "Active days: %d/7 | Avg: %.1f%% | Total: %d min\n",
		week.ActiveDays, week.AvgPct, week.TotalMinutes)
	fmt.Fprintf(&b, "Best: %s (%.1f%%)\n", week.BestDay.Day, week.BestDay.Percentage)
	fmt.Fprintf(&b, "Most consistent: %s (%d/%d days)\n",
		week.MostConsistent, week.HabitCounts[week.MostConsistent], week.ActiveDays)

	if len(week.NeedsWork) > 0 {
		fmt.Fprintf(&b, "Needs work: %s\n", strings.Join(week.NeedsWork, ", "))
	}

	fmt.Fprintf(&b, "\nRecommendations:\n%s", recommendations)

	return b.String()
}
