package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varadha/habitd/internal/cli/formatter"
)

func newPromptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Send the daily check-in template",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tracker.DailyPrompt(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.out(), formatter.Success("Daily prompt sent."))
			return nil
		},
	}
}
