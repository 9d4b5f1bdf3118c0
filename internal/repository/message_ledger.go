// Package repository persists the message ledger: inbound webhook
// deliveries already handled, and an audit log of outbound sends.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboundKind distinguishes free-form text sends from template sends.
type OutboundKind string

const (
	OutboundText     OutboundKind = "text"
	OutboundTemplate OutboundKind = "template"
)

// OutboundStatus records whether the Cloud API accepted a send.
type OutboundStatus string

const (
	OutboundSent   OutboundStatus = "sent"
	OutboundFailed OutboundStatus = "failed"
)

// OutboundRecord is one row of the outbound audit log.
type OutboundRecord struct {
	ID        string
	Recipient string
	Kind      OutboundKind
	Template  string
	Body      string
	Status    OutboundStatus
	Error     string
	CreatedAt time.Time
}

// MessageLedger implements webhook dedupe and the outbound audit log on
// SQLite.
type MessageLedger struct {
	db *sql.DB
}

// NewMessageLedger creates a MessageLedger backed by db.
func NewMessageLedger(db *sql.DB) *MessageLedger {
	return &MessageLedger{db: db}
}

// RecordInbound registers a webhook delivery by its Cloud API message id and
// reports whether this is the first time it was seen. Re-deliveries return
// false and must be acknowledged without re-processing.
func (l *MessageLedger) RecordInbound(ctx context.Context, messageID, sender, body string, receivedAt time.Time) (bool, error) {
	query := `INSERT OR IGNORE INTO inbound_messages (message_id, sender, body, received_at)
		VALUES (?, ?, ?, ?)`
	res, err := l.db.ExecContext(ctx, query,
		messageID,
		sender,
		body,
		receivedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("recording inbound message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading insert result: %w", err)
	}
	return n == 1, nil
}

// LogOutbound appends one send attempt to the audit log. A zero ID gets a
// generated UUID; a zero CreatedAt gets the current time.
func (l *MessageLedger) LogOutbound(ctx context.Context, rec OutboundRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	query := `INSERT INTO outbound_messages (id, recipient, kind, template, body, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, query,
		rec.ID,
		rec.Recipient,
		string(rec.Kind),
		rec.Template,
		rec.Body,
		string(rec.Status),
		rec.Error,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("logging outbound message: %w", err)
	}
	return nil
}

// RecentOutbound returns the newest limit sends, most recent first.
func (l *MessageLedger) RecentOutbound(ctx context.Context, limit int) ([]OutboundRecord, error) {
	query := `SELECT id, recipient, kind, template, body, status, error, created_at
		FROM outbound_messages ORDER BY created_at DESC, id LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing outbound messages: %w", err)
	}
	defer rows.Close()

	var records []OutboundRecord
	for rows.Next() {
		var rec OutboundRecord
		var kind, status, createdAtStr string
		if err := rows.Scan(&rec.ID, &rec.Recipient, &kind, &rec.Template,
			&rec.Body, &status, &rec.Error, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning outbound row: %w", err)
		}
		rec.Kind = OutboundKind(kind)
		rec.Status = OutboundStatus(status)
		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outbound rows: %w", err)
	}
	return records, nil
}
