// Package service holds the tracker's application logic: routing inbound
// messages, persisting interpreted habits, and running the scheduled
// prompt and report jobs. Collaborators come in through narrow interfaces
// so tests can run against fakes.
package service

import (
	"context"
	"time"

	"github.com/varadha/habitd/internal/domain"
)

// HabitStore is the slice of sheet storage the tracker needs.
type HabitStore interface {
	WriteHabits(ctx context.Context, date time.Time, habits map[string]int) (domain.WriteResult, error)
	ReadHabits(ctx context.Context, date time.Time) (map[string]int, error)
	ReadWeek(ctx context.Context, dates []time.Time) ([]domain.DailyRecord, error)
}

// Notifier delivers outbound WhatsApp messages.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
	SendTemplate(ctx context.Context, to, templateName string, params []string) error
}
