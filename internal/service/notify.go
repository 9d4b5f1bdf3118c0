package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/varadha/habitd/internal/repository"
)

// LedgerNotifier decorates a Notifier with the outbound audit log. Every
// send attempt is recorded with its outcome; a ledger write failure is
// logged but never blocks delivery.
type LedgerNotifier struct {
	next   Notifier
	ledger *repository.MessageLedger
	logger *slog.Logger
}

// NewLedgerNotifier wraps next so that sends are recorded in the ledger.
func NewLedgerNotifier(next Notifier, ledger *repository.MessageLedger, logger *slog.Logger) *LedgerNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerNotifier{next: next, ledger: ledger, logger: logger}
}

func (n *LedgerNotifier) SendText(ctx context.Context, to, body string) error {
	err := n.next.SendText(ctx, to, body)
	n.record(ctx, repository.OutboundRecord{
		Recipient: to,
		Kind:      repository.OutboundText,
		Body:      body,
	}, err)
	return err
}

func (n *LedgerNotifier) SendTemplate(ctx context.Context, to, templateName string, params []string) error {
	err := n.next.SendTemplate(ctx, to, templateName, params)
	n.record(ctx, repository.OutboundRecord{
		Recipient: to,
		Kind:      repository.OutboundTemplate,
		Template:  templateName,
		Body:      strings.Join(params, " | "),
	}, err)
	return err
}

func (n *LedgerNotifier) record(ctx context.Context, rec repository.OutboundRecord, sendErr error) {
	rec.Status = repository.OutboundSent
	if sendErr != nil {
		rec.Status = repository.OutboundFailed
		rec.Error = sendErr.Error()
	}
	if err := n.ledger.LogOutbound(ctx, rec); err != nil {
		n.logger.Warn("recording outbound message", "error", err)
	}
}
