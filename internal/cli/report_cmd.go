package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varadha/habitd/internal/cli/formatter"
)

func newReportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send the weekly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				body, err := app.Tracker.BuildWeeklyReport(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(app.out(), formatter.Block(body))
				return nil
			}

			if err := app.Tracker.WeeklyReport(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.out(), formatter.Success("Weekly report sent."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report instead of sending it")

	return cmd
}
