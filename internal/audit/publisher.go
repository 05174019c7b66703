package audit

import (
	"context"
	"log/slog"

	"authgw/pkg/requestcontext"
)

// Emitter receives audit events as a side channel, e.g. a Kafka topic.
// Emitters are fire-and-forget; delivery failures must not block logins.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// Publisher enriches audit events from the request context and hands them
// to the background worker via a bounded inbox. When the inbox is full the
// event is dropped with a warning rather than stalling the login path.
type Publisher struct {
	logger   *slog.Logger
	inbox    chan Event
	emitters []Emitter
}

// NewPublisher creates a publisher with the given inbox capacity.
func NewPublisher(logger *slog.Logger, capacity int, emitters ...Emitter) *Publisher {
	return &Publisher{
		logger:   logger,
		inbox:    make(chan Event, capacity),
		emitters: emitters,
	}
}

// Inbox exposes the event channel for the persistence worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit records an audit event. Never blocks.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.TransactionID == "" {
		event.TransactionID = requestcontext.TransactionID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	p.logger.InfoContext(ctx, "audit event",
		"transaction_id", event.TransactionID,
		"username", event.Username,
		"action", event.Action,
		"outcome", event.Outcome,
		"reason", event.Reason,
	)

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"transaction_id", event.TransactionID,
			"action", event.Action,
		)
	}

	for _, e := range p.emitters {
		e.Emit(ctx, event)
	}
}
