package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Webhook deliveries are at-least-once; the primary key on the Cloud
	// API message id is what makes processing exactly-once.
	`CREATE TABLE IF NOT EXISTS inbound_messages (
		message_id  TEXT PRIMARY KEY,
		sender      TEXT NOT NULL,
		body        TEXT NOT NULL,
		received_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_inbound_received ON inbound_messages(received_at)`,

	`CREATE TABLE IF NOT EXISTS outbound_messages (
		id         TEXT PRIMARY KEY,
		recipient  TEXT NOT NULL,
		kind       TEXT NOT NULL
		           CHECK(kind IN ('text','template')),
		template   TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL
		           CHECK(status IN ('sent','failed')),
		error      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_outbound_created ON outbound_messages(created_at)`,
}
