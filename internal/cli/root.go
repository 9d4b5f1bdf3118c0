// Package cli defines the habitd command tree. Commands drive the same
// tracker the webhook server uses; wiring happens in cmd/habitd.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/domain"
)

// TrackerOps is the slice of the tracker the commands call.
type TrackerOps interface {
	DailyPrompt(ctx context.Context) error
	WeeklyReport(ctx context.Context) error
	BuildWeeklyReport(ctx context.Context) (string, error)
	StatusText(ctx context.Context) string
	Log(ctx context.Context, habits map[string]int) (domain.WriteResult, error)
}

// App holds everything the CLI commands need.
type App struct {
	Catalog *catalog.Catalog
	Tracker TrackerOps

	// Serve runs the webhook server until it fails.
	Serve func() error

	Out io.Writer
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

// NewRootCmd creates the top-level "habitd" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "habitd",
		Short:         "WhatsApp habit tracking assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newPromptCmd(app),
		newReportCmd(app),
		newStatusCmd(app),
		newLogCmd(app),
	)

	return root
}
