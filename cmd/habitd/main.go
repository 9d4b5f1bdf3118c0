package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/cli"
	"github.com/varadha/habitd/internal/config"
	"github.com/varadha/habitd/internal/dateutil"
	"github.com/varadha/habitd/internal/db"
	"github.com/varadha/habitd/internal/intelligence"
	"github.com/varadha/habitd/internal/llm"
	"github.com/varadha/habitd/internal/repository"
	"github.com/varadha/habitd/internal/server"
	"github.com/varadha/habitd/internal/service"
	"github.com/varadha/habitd/internal/sheets"
	"github.com/varadha/habitd/internal/whatsapp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	loc, err := dateutil.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	tokens, err := sheets.TokenSourceFromFile(context.Background(), cfg.CredentialsFile)
	if err != nil {
		return err
	}
	store := sheets.NewStore(sheets.NewClient(sheets.Config{
		SpreadsheetID: cfg.SpreadsheetID,
		SheetName:     cfg.SheetName,
	}, tokens), cat)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening message ledger: %w", err)
	}
	defer database.Close()
	ledger := repository.NewMessageLedger(database)

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewSlogObserver(logger)
	}
	gemini := llm.NewGeminiClient(cfg.LLM, observer)

	waClient := whatsapp.NewClient(whatsapp.Config{
		AccessToken:   cfg.AccessToken,
		PhoneNumberID: cfg.PhoneNumberID,
		APIVersion:    cfg.APIVersion,
	})
	notifier := service.NewLedgerNotifier(waClient, ledger, logger)

	tracker := service.NewTracker(
		service.Config{
			UserNumber:           cfg.UserNumber,
			UserName:             cfg.UserName,
			DailyPromptTemplate:  cfg.DailyPromptTemplate,
			WeeklyReportTemplate: cfg.WeeklyReportTemplate,
		},
		cat, store,
		intelligence.NewReplyInterpreter(gemini, cat),
		intelligence.NewCoach(gemini, cat),
		notifier, loc, logger,
	)

	app := &cli.App{
		Catalog: cat,
		Tracker: tracker,
		Serve: func() error {
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			srv := server.New(server.Config{
				Addr:          cfg.Addr,
				VerifyToken:   cfg.VerifyToken,
				AppSecret:     cfg.AppSecret,
				JobToken:      cfg.JobToken,
				AllowedSender: cfg.UserNumber,
			}, tracker, ledger, notifier, logger)
			logger.Info("starting webhook server", "addr", cfg.Addr)
			return srv.Run()
		},
	}

	return cli.NewRootCmd(app).Execute()
}
