// Package txlog implements the gateway's transaction interception layer.
//
// Every inbound operation is wrapped in a correlated lifecycle: a unique
// transaction id is minted at the boundary (or reused when the call is nested
// inside one that already carries an id), each phase transition is logged to
// both the structured logger and an append-only sink, durations are measured,
// and failures are re-raised after logging. The sink itself is the only thing
// never intercepted.
package txlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "authgw/pkg/domain-errors"
	"authgw/pkg/requestcontext"
)

const defaultPayloadCap = 200

// NewTransactionID mints a correlation id for one inbound call.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}

// Interceptor emits the per-call lifecycle records. It owns the log sink;
// everything else about a transaction lives in the call's context.
type Interceptor struct {
	logger     *slog.Logger
	sink       Sink
	payloadCap int
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithSink sets the append-only sink receiving one line per phase emission.
func WithSink(sink Sink) Option {
	return func(i *Interceptor) { i.sink = sink }
}

// WithPayloadCap overrides the truncation cap for logged payloads.
func WithPayloadCap(cap int) Option {
	return func(i *Interceptor) {
		if cap > 0 {
			i.payloadCap = cap
		}
	}
}

// New creates an Interceptor. The logger is required; the sink is optional
// (phase records still reach the structured logger without one).
func New(logger *slog.Logger, opts ...Option) *Interceptor {
	i := &Interceptor{
		logger:     logger,
		payloadCap: defaultPayloadCap,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ensureTransaction reuses the correlation id already carried by ctx, or
// mints one for a new top-level call. Correlation is per inbound call, not
// per internal invocation.
func ensureTransaction(ctx context.Context) context.Context {
	if requestcontext.TransactionID(ctx) != "" {
		return ctx
	}
	return requestcontext.WithTransactionID(ctx, NewTransactionID())
}

// Do wraps one operation in the full transaction lifecycle and returns its
// result. Failures are re-raised after logging: recoverable, classified
// failures surface as WARNING, everything else as ERROR. A nil interceptor
// runs the operation unwrapped, which keeps tests and optional wiring simple.
func Do[T any](ctx context.Context, i *Interceptor, op string, args any, fn func(context.Context) (T, error)) (T, error) {
	if i == nil {
		return fn(ctx)
	}

	ctx = ensureTransaction(ctx)
	start := time.Now()

	defer func() {
		i.emit(ctx, PhaseTerminated, op, fmt.Sprintf("Total Duration: %dms", time.Since(start).Milliseconds()), nil)
	}()

	i.emit(ctx, PhaseStarted, op, httpContext(ctx), nil)
	i.emit(ctx, PhaseInProgress, op, "", args)

	out, err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		note := fmt.Sprintf("Duration: %dms | Error: %s", elapsed.Milliseconds(), sanitize(err.Error(), i.payloadCap))
		if dErrors.Recoverable(err) {
			i.emit(ctx, PhaseWarning, op, note, nil)
		} else {
			i.emit(ctx, PhaseError, op, note, nil)
		}
		return out, err
	}

	i.emit(ctx, PhaseCompleted, op, fmt.Sprintf("Duration: %dms", elapsed.Milliseconds()), out)
	return out, nil
}

// emit writes one phase record to the structured logger and the sink. A sink
// write failure is downgraded to a console-only diagnostic; it must never
// abort or alter the wrapped operation.
func (i *Interceptor) emit(ctx context.Context, phase Phase, op, note string, payload any) {
	txnID := requestcontext.TransactionID(ctx)
	detail := sanitize(payload, i.payloadCap)

	attrs := []any{
		"txn_id", txnID,
		"phase", phase.String(),
		"operation", op,
	}
	if note != "" {
		attrs = append(attrs, "context", note)
	}
	if detail != "" {
		attrs = append(attrs, "details", detail)
	}

	switch phase {
	case PhaseError:
		i.logger.ErrorContext(ctx, "transaction", attrs...)
	case PhaseWarning:
		i.logger.WarnContext(ctx, "transaction", attrs...)
	default:
		i.logger.InfoContext(ctx, "transaction", attrs...)
	}

	if i.sink == nil {
		return
	}
	line := formatLine(time.Now(), txnID, phase, op, note, detail)
	if err := i.sink.Write(line); err != nil {
		i.logger.Warn("transaction log sink write failed", "error", err, "txn_id", txnID)
	}
}

// formatLine renders one sink line. Field set and order are the contract:
// timestamp, correlation id, phase marker, operation, duration annotation
// where applicable, sanitized payload.
func formatLine(ts time.Time, txnID string, phase Phase, op, note, detail string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] TXN[%s] | %s | %s", ts.Format("2006-01-02 15:04:05"), txnID, phase, op)
	if note != "" {
		fmt.Fprintf(&b, " | %s", note)
	}
	if detail != "" {
		fmt.Fprintf(&b, " | Details: %s", detail)
	}
	return b.String()
}

// httpContext renders the inbound HTTP call info for STARTED records, or a
// marker for calls that did not originate from HTTP.
func httpContext(ctx context.Context) string {
	info, ok := requestcontext.HTTPCall(ctx)
	if !ok {
		return "Non-HTTP Context"
	}
	return fmt.Sprintf("%s %s | %s", info.Method, info.Path, info.RemoteAddr)
}
