// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// It defines context keys and getter/setter functions for values that are set
// by middleware but consumed by services. By keeping this package free of
// net/http dependencies, services can import only what they need without
// pulling in HTTP-related code.
//
// Usage in services (read values):
//
//	txnID := requestcontext.TransactionID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithTransactionID(ctx, txnID)
//	ctx = requestcontext.WithClientMetadata(ctx, ip, userAgent)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	transactionIDKey struct{}
	httpInfoKey      struct{}
	clientIPKey      struct{}
	userAgentKey     struct{}
	requestTimeKey   struct{}
)

// HTTPInfo describes the inbound HTTP call that opened the transaction.
// Internal invocations nested inside the same call carry the same value.
type HTTPInfo struct {
	Method     string
	Path       string
	RemoteAddr string
}

// TransactionID retrieves the per-call correlation id from the context.
// Returns "" if the call did not pass through the transaction middleware.
func TransactionID(ctx context.Context) string {
	if id, ok := ctx.Value(transactionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithTransactionID injects a correlation id into the context.
func WithTransactionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, transactionIDKey{}, id)
}

// HTTPCall retrieves the inbound HTTP call info, if any.
func HTTPCall(ctx context.Context) (HTTPInfo, bool) {
	info, ok := ctx.Value(httpInfoKey{}).(HTTPInfo)
	return info, ok
}

// WithHTTPCall injects the inbound HTTP call info into the context.
func WithHTTPCall(ctx context.Context, info HTTPInfo) context.Context {
	return context.WithValue(ctx, httpInfoKey{}, info)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	ctx = context.WithValue(ctx, userAgentKey{}, userAgent)
	return ctx
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts like workers and tests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
