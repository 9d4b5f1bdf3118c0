package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varadha/habitd/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's logged habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.out(), formatter.Block(app.Tracker.StatusText(cmd.Context())))
			return nil
		},
	}
}
