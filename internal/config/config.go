// Package config loads process configuration from HABITD_* environment
// variables and sets up logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/varadha/habitd/internal/llm"
)

// Config aggregates everything the binary needs to wire itself.
type Config struct {
	// User addressing.
	UserNumber string
	UserName   string

	// Google Sheets storage.
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string

	// WhatsApp Cloud API.
	AccessToken   string
	PhoneNumberID string
	APIVersion    string

	// Webhook server.
	Addr        string
	VerifyToken string
	AppSecret   string
	JobToken    string

	// Template names for scheduled sends.
	DailyPromptTemplate  string
	WeeklyReportTemplate string

	// Local state and environment.
	DBPath      string
	Timezone    string
	CatalogFile string
	LogLevel    string
	LogFormat   string

	LLM llm.Config
}

// Load reads configuration from the environment, applying defaults for
// anything unset. It never fails; missing required values surface through
// Validate at the entry point that needs them.
func Load() Config {
	cfg := Config{
		UserNumber:           os.Getenv("HABITD_USER_NUMBER"),
		UserName:             envOr("HABITD_USER_NAME", "there"),
		SpreadsheetID:        os.Getenv("HABITD_SHEET_ID"),
		SheetName:            envOr("HABITD_SHEET_NAME", "Habits"),
		CredentialsFile:      os.Getenv("HABITD_GOOGLE_CREDENTIALS"),
		AccessToken:          os.Getenv("HABITD_WA_ACCESS_TOKEN"),
		PhoneNumberID:        os.Getenv("HABITD_WA_PHONE_NUMBER_ID"),
		APIVersion:           os.Getenv("HABITD_WA_API_VERSION"),
		Addr:                 envOr("HABITD_ADDR", ":8080"),
		VerifyToken:          os.Getenv("HABITD_VERIFY_TOKEN"),
		AppSecret:            os.Getenv("HABITD_APP_SECRET"),
		JobToken:             os.Getenv("HABITD_JOB_TOKEN"),
		DailyPromptTemplate:  os.Getenv("HABITD_DAILY_TEMPLATE"),
		WeeklyReportTemplate: os.Getenv("HABITD_WEEKLY_TEMPLATE"),
		DBPath:               envOr("HABITD_DB_PATH", defaultDBPath()),
		Timezone:             os.Getenv("HABITD_TIMEZONE"),
		CatalogFile:          os.Getenv("HABITD_CATALOG"),
		LogLevel:             os.Getenv("HABITD_LOG_LEVEL"),
		LogFormat:            os.Getenv("HABITD_LOG_FORMAT"),
		LLM:                  llm.LoadConfig(),
	}
	return cfg
}

// Validate checks the settings every outbound-capable entry point needs.
// The returned error names each missing variable.
func (c Config) Validate() error {
	var missing []string
	if c.UserNumber == "" {
		missing = append(missing, "HABITD_USER_NUMBER")
	}
	if c.SpreadsheetID == "" {
		missing = append(missing, "HABITD_SHEET_ID")
	}
	if c.CredentialsFile == "" {
		missing = append(missing, "HABITD_GOOGLE_CREDENTIALS")
	}
	if c.AccessToken == "" {
		missing = append(missing, "HABITD_WA_ACCESS_TOKEN")
	}
	if c.PhoneNumberID == "" {
		missing = append(missing, "HABITD_WA_PHONE_NUMBER_ID")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "HABITD_GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ValidateServe additionally checks the webhook secrets the server needs.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	var missing []string
	if c.VerifyToken == "" {
		missing = append(missing, "HABITD_VERIFY_TOKEN")
	}
	if c.AppSecret == "" {
		missing = append(missing, "HABITD_APP_SECRET")
	}
	if c.JobToken == "" {
		missing = append(missing, "HABITD_JOB_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "habitd.db"
	}
	return filepath.Join(home, ".habitd", "habitd.db")
}
