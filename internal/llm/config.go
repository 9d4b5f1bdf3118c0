package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	// TaskParse extracts a structured habit map from a user reply.
	TaskParse TaskType = "parse"
	// TaskRecommend produces weekly coaching recommendations.
	TaskRecommend TaskType = "recommend"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the Gemini subsystem.
type Config struct {
	APIKey     string
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The API key must
// still be supplied by the environment.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://generativelanguage.googleapis.com",
		Model:      "gemini-2.0-flash",
		TimeoutMs:  20000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskParse:     {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 15000},
			TaskRecommend: {Temperature: 0.4, MaxTokens: 512, TimeoutMs: 20000},
		},
	}
}

// LoadConfig reads Gemini configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("HABITD_GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("HABITD_GEMINI_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("HABITD_GEMINI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("HABITD_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("HABITD_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("HABITD_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	applyTaskTimeoutEnv(&cfg, TaskParse, "HABITD_LLM_PARSE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskRecommend, "HABITD_LLM_RECOMMEND_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
