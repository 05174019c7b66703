package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore persists the audit trail to the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts an audit event. Idempotent via ON CONFLICT DO NOTHING.
func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (
			id, timestamp, transaction_id, username, action,
			outcome, reason, client_ip, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.TransactionID,
		event.Username,
		event.Action,
		event.Outcome,
		event.Reason,
		event.ClientIP,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByUsername returns events for one user, newest first.
func (s *PostgresStore) ListByUsername(ctx context.Context, username string) ([]Event, error) {
	query := `
		SELECT timestamp, transaction_id, username, action,
			   outcome, reason, client_ip, user_agent
		FROM audit_events
		WHERE lower(username) = lower($1)
		ORDER BY timestamp DESC
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT timestamp, transaction_id, username, action,
			   outcome, reason, client_ip, user_agent
		FROM audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event

	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.Timestamp,
			&event.TransactionID,
			&event.Username,
			&event.Action,
			&event.Outcome,
			&event.Reason,
			&event.ClientIP,
			&event.UserAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
