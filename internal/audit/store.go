package audit

import "context"

// Store is an append-only sink for the audit trail.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUsername(ctx context.Context, username string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
