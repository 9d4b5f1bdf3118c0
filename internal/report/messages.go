// Package report renders the user-facing WhatsApp messages: confirmations,
// status read-backs, guidance texts and the weekly report. Everything here
// is deterministic string building; no external calls.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/varadha/habitd/internal/catalog"
)

// HelpMessage lists the available habits and shortcuts.
const HelpMessage = "Available habits and shortcuts:\n\n" +
	"Walk/Run, Sandhi (morning/evening/both), Yoga, Brief, " +
	"Cook, Utensils, Clothes, Upskill, Read/Audiobook, Jobs\n\n" +
	"Tips:\n" +
	"- Say times: 'walked 30' or just 'walked' for default\n" +
	"- 'sandhi both' = morning + evening\n" +
	"- 'household' = cook + utensils + clothes\n\n" +
	"Commands: 'skip', 'status', 'help'"

// NoHabitsMessage is returned when a reply contained nothing recognizable.
const NoHabitsMessage = "No habits detected in your message. " +
	"Type 'help' to see available habits and shortcuts."

// RephraseMessage is returned when the reply could not be parsed at all.
const RephraseMessage = "I couldn't understand that. Could you rephrase?\n\n" +
	"Example: 'walked 45, sandhi both, cooked, utensils, clothes, read 20'\n\n" +
	"Type 'help' for all available habits."

// ApologyMessage is the catch-all reply when message processing fails
// unexpectedly.
const ApologyMessage = "Sorry, something went wrong. Please try again.\n" +
	"Type 'help' for usage instructions."

// RestDayMessage acknowledges a skip day. No habit data is written.
func RestDayMessage(dateLabel string) string {
	return fmt.Sprintf("Got it! %s marked as a rest day. See you tomorrow!", dateLabel)
}

// StatusEmptyMessage is shown when nothing has been logged yet today.
func StatusEmptyMessage(dateLabel string) string {
	return fmt.Sprintf("No habits logged yet for %s. Reply with what you did today!", dateLabel)
}

// FormatConfirmation builds the reply sent after habits were logged: each
// habit with its minutes (ordered by name), the total and percentage, and
// the catalog habits that were not logged.
func FormatConfirmation(cat *catalog.Catalog, habits map[string]int, total int, percentage float64, dateLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Logged for %s:\n", dateLabel)

	for _, name := range sortedNames(habits) {
		fmt.Fprintf(&b, "\n  %s: %d min", name, habits[name])
	}

	fmt.Fprintf(&b, "\n\nTotal: %d min | %.1f%%", total, percentage)

	missed := make([]string, 0, len(cat.Habits))
	for _, name := range cat.Names() {
		if _, done := habits[name]; !done {
			missed = append(missed, name)
		}
	}
	if len(missed) > 0 {
		sort.Strings(missed)
		fmt.Fprintf(&b, "\n\nNot logged: %s", strings.Join(missed, ", "))
	}

	return b.String()
}

// FormatSaveFailure reports what was understood when persisting it failed,
// so the user knows nothing was silently lost.
func FormatSaveFailure(habits map[string]int, cause string) string {
	var b strings.Builder
	b.WriteString("I understood:\n")
	for _, name := range sortedNames(habits) {
		fmt.Fprintf(&b, "\n  %s: %d min", name, habits[name])
	}
	fmt.Fprintf(&b, "\n\nbut saving failed: %s\n\nPlease try again.", cause)
	return b.String()
}

// FormatStatus builds the read-back of today's logged habits.
func FormatStatus(habits map[string]int, total int, percentage float64, dateLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's log (%s):\n", dateLabel)

	for _, name := range sortedNames(habits) {
		fmt.Fprintf(&b, "\n  %s: %d min", name, habits[name])
	}

	fmt.Fprintf(&b, "\n\nTotal: %d min | %.1f%%", total, percentage)
	return b.String()
}

func sortedNames(habits map[string]int) []string {
	names := make([]string, 0, len(habits))
	for name := range habits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
