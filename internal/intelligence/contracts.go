// Package intelligence owns the language-model-backed parts of the tracker:
// turning free-text replies into validated habit maps and producing weekly
// coaching recommendations. Validation and fallback policy live here; raw
// generation lives in the llm package.
package intelligence

import (
	"context"
	"errors"

	"github.com/varadha/habitd/internal/stats"
)

var (
	// ErrNoHabitsDetected means the reply was understood but contained no
	// recognizable habit. User-facing guidance, not a system error.
	ErrNoHabitsDetected = errors.New("no habits detected in message")

	// ErrUnparseableReply means the delegate produced no usable structure
	// after the built-in retry.
	ErrUnparseableReply = errors.New("could not parse habit reply")
)

// ReplyInterpreter turns a raw user message into a validated mapping of
// habit name to minutes.
type ReplyInterpreter interface {
	Interpret(ctx context.Context, text string) (map[string]int, error)
}

// Coach produces weekly recommendations from a week summary. It never
// fails: when the model is unavailable or returns garbage it falls back to
// a static recommendation set.
type Coach interface {
	Recommend(ctx context.Context, week stats.WeekSummary) string
}
