package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/dateutil"
	"github.com/varadha/habitd/internal/domain"
	"github.com/varadha/habitd/internal/intelligence"
	"github.com/varadha/habitd/internal/report"
	"github.com/varadha/habitd/internal/sheets"
	"github.com/varadha/habitd/internal/stats"
)

// Config carries the tracker's user addressing and template names.
type Config struct {
	UserNumber string
	UserName   string

	DailyPromptTemplate  string
	WeeklyReportTemplate string
}

func (c Config) withDefaults() Config {
	if c.DailyPromptTemplate == "" {
		c.DailyPromptTemplate = "daily_habit_prompt"
	}
	if c.WeeklyReportTemplate == "" {
		c.WeeklyReportTemplate = "weekly_report"
	}
	return c
}

// Tracker routes inbound messages and runs the scheduled jobs. It is
// stateless between calls; all durable state lives in the sheet.
type Tracker struct {
	cfg      Config
	cat      *catalog.Catalog
	store    HabitStore
	interp   intelligence.ReplyInterpreter
	coach    intelligence.Coach
	notifier Notifier
	loc      *time.Location
	logger   *slog.Logger

	now func() time.Time
}

// NewTracker wires a Tracker from its collaborators.
func NewTracker(cfg Config, cat *catalog.Catalog, store HabitStore,
	interp intelligence.ReplyInterpreter, coach intelligence.Coach,
	notifier Notifier, loc *time.Location, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		cfg:      cfg.withDefaults(),
		cat:      cat,
		store:    store,
		interp:   interp,
		coach:    coach,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

func (t *Tracker) today() time.Time {
	n := t.now().In(t.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, t.loc)
}

// ProcessMessage routes one inbound text and returns the reply to send.
// It always produces a reply; unexpected failures become an apology
// rather than silence.
func (t *Tracker) ProcessMessage(ctx context.Context, text string) string {
	today := t.today()
	label := dateutil.SheetDate(today)

	switch catalog.Normalize(text) {
	case "skip", "off", "rest", "leave":
		return report.RestDayMessage(label)
	case "status", "today":
		return t.statusReply(ctx, today, label)
	case "help", "?":
		return report.HelpMessage
	}

	habits, err := t.interp.Interpret(ctx, text)
	switch {
	case errors.Is(err, intelligence.ErrNoHabitsDetected):
		return report.NoHabitsMessage
	case errors.Is(err, intelligence.ErrUnparseableReply):
		return report.RephraseMessage
	case err != nil:
		t.logger.Error("interpreting reply", "error", err)
		return report.ApologyMessage
	}

	result, err := t.store.WriteHabits(ctx, today, habits)
	if err != nil {
		if errors.Is(err, sheets.ErrRowNotFound) {
			// A missing row for today means the sheet needs a new dated
			// row; retrying won't help, so say exactly what is wrong.
			return err.Error()
		}
		t.logger.Error("persisting habits", "error", err, "habits", len(habits))
		return report.FormatSaveFailure(habits, err.Error())
	}

	t.logger.Info("habits logged",
		"date", label, "habits", len(habits),
		"total_min", result.TotalMinutes)
	return report.FormatConfirmation(t.cat, habits, result.TotalMinutes, result.Percentage, label)
}

func (t *Tracker) statusReply(ctx context.Context, today time.Time, label string) string {
	habits, err := t.store.ReadHabits(ctx, today)
	if errors.Is(err, sheets.ErrRowNotFound) {
		return report.StatusEmptyMessage(label)
	}
	if err != nil {
		t.logger.Error("reading today's habits", "error", err)
		return report.ApologyMessage
	}
	if len(habits) == 0 {
		return report.StatusEmptyMessage(label)
	}
	total, pct := stats.DailyScore(habits, t.cat.DailyTarget())
	return report.FormatStatus(habits, total, pct, label)
}

// Log writes habits for today directly, bypassing interpretation. Used by
// the terminal surface.
func (t *Tracker) Log(ctx context.Context, habits map[string]int) (domain.WriteResult, error) {
	return t.store.WriteHabits(ctx, t.today(), habits)
}

// StatusText returns today's read-back, same as the "status" command.
func (t *Tracker) StatusText(ctx context.Context) string {
	today := t.today()
	return t.statusReply(ctx, today, dateutil.SheetDate(today))
}

// DailyPrompt sends the morning check-in template.
func (t *Tracker) DailyPrompt(ctx context.Context) error {
	params := []string{t.cfg.UserName, dateutil.ShortDayDate(t.today())}
	if err := t.notifier.SendTemplate(ctx, t.cfg.UserNumber, t.cfg.DailyPromptTemplate, params); err != nil {
		return fmt.Errorf("sending daily prompt: %w", err)
	}
	return nil
}

// WeeklyReport aggregates the past seven days, asks the coach for
// recommendations, and delivers the formatted report. The template send is
// tried first since it works outside the session window; on failure the
// report goes out as plain text.
func (t *Tracker) WeeklyReport(ctx context.Context) error {
	body, err := t.BuildWeeklyReport(ctx)
	if err != nil {
		return err
	}

	err = t.notifier.SendTemplate(ctx, t.cfg.UserNumber, t.cfg.WeeklyReportTemplate, []string{body})
	if err == nil {
		return nil
	}
	t.logger.Warn("weekly report template send failed, falling back to text", "error", err)

	if err := t.notifier.SendText(ctx, t.cfg.UserNumber, body); err != nil {
		return fmt.Errorf("sending weekly report: %w", err)
	}
	return nil
}

// BuildWeeklyReport produces the report text without sending it. Used by
// the terminal surface and by WeeklyReport.
func (t *Tracker) BuildWeeklyReport(ctx context.Context) (string, error) {
	dates := dateutil.PastNDays(t.today(), 7)
	records, err := t.store.ReadWeek(ctx, dates)
	if err != nil {
		return "", fmt.Errorf("reading week: %w", err)
	}

	week := stats.Summarize(records, t.cat.Names())
	var recommendations string
	if week.HasData() {
		recommendations = t.coach.Recommend(ctx, week)
	}
	return report.FormatWeeklyReport(week, recommendations), nil
}
