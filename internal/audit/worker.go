package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. Store
// failures are logged and skipped: the trail is best-effort and must not
// take the gateway down.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.persist(ctx, event)
		}
	}
}

// drain flushes whatever is still buffered at shutdown. Uses a background
// context because the run context is already cancelled.
func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.persist(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) persist(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.Error("persist audit event",
			"transaction_id", event.TransactionID,
			"action", event.Action,
			"error", err,
		)
	}
}
