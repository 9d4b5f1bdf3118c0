package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/varadha/habitd/internal/cli/formatter"
	"github.com/varadha/habitd/internal/report"
)

func newLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log [habit[=minutes]...]",
		Short: "Log habits for today",
		Long: "Log habits for today, bypassing WhatsApp.\n\n" +
			"With arguments, each habit is logged directly: 'habitd log walk=45 yoga'\n" +
			"(no minutes means the habit's default). Aliases and shortcuts like\n" +
			"'household' work the same as in a WhatsApp message.\n\n" +
			"Without arguments, an interactive form opens.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var habits map[string]int
			var err error
			if len(args) > 0 {
				habits, err = app.parseLogArgs(args)
			} else {
				habits, err = app.collectLogForm()
			}
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Fprintln(app.out(), formatter.Fail("Nothing selected."))
				return nil
			}

			result, err := app.Tracker.Log(cmd.Context(), habits)
			if err != nil {
				return err
			}

			body := report.FormatConfirmation(app.Catalog, habits, result.TotalMinutes, result.Percentage, "today")
			fmt.Fprintln(app.out(), formatter.Block(body))
			return nil
		},
	}
}

// parseLogArgs resolves "alias" or "alias=minutes" arguments through the
// catalog. Compound aliases expand to all their habits at the given or
// default duration.
func (a *App) parseLogArgs(args []string) (map[string]int, error) {
	habits := make(map[string]int)
	for _, arg := range args {
		text, minutesPart, hasMinutes := strings.Cut(arg, "=")

		names := a.Catalog.ResolveAlias(text)
		if len(names) == 0 {
			return nil, fmt.Errorf("unknown habit %q (try 'habitd log --help')", text)
		}

		for _, name := range names {
			habit, _ := a.Catalog.ByName(name)
			minutes := habit.DefaultMin
			if hasMinutes {
				n, err := strconv.Atoi(minutesPart)
				if err != nil || n <= 0 {
					return nil, fmt.Errorf("invalid minutes %q for %q", minutesPart, text)
				}
				minutes = n
			}
			habits[name] = minutes
		}
	}
	return habits, nil
}

// collectLogForm runs the interactive two-step form: pick habits, then
// adjust minutes. Requires a terminal.
func (a *App) collectLogForm() (map[string]int, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("interactive logging needs a terminal; pass habits as arguments instead")
	}

	options := make([]huh.Option[string], 0, len(a.Catalog.Habits))
	for _, h := range a.Catalog.Habits {
		label := fmt.Sprintf("%s (%d min)", h.Name, h.DefaultMin)
		options = append(options, huh.NewOption(label, h.Name))
	}

	var selected []string
	pick := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("What did you do today?").
			Options(options...).
			Value(&selected),
	))
	if err := pick.Run(); err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, nil
	}

	values := make([]string, len(selected))
	fields := make([]huh.Field, len(selected))
	for i, name := range selected {
		habit, _ := a.Catalog.ByName(name)
		values[i] = strconv.Itoa(habit.DefaultMin)
		fields[i] = huh.NewInput().
			Title(name + " (minutes)").
			Value(&values[i]).
			Validate(validateMinutes)
	}
	durations := huh.NewForm(huh.NewGroup(fields...))
	if err := durations.Run(); err != nil {
		return nil, err
	}

	habits := make(map[string]int, len(selected))
	for i, name := range selected {
		n, err := strconv.Atoi(strings.TrimSpace(values[i]))
		if err != nil {
			return nil, fmt.Errorf("invalid minutes %q for %q", values[i], name)
		}
		habits[name] = n
	}
	return habits, nil
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number of minutes")
	}
	return nil
}
