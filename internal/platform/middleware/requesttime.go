package middleware

import (
	"net/http"
	"time"

	"authgw/pkg/requestcontext"
)

// RequestTime pins one observation of the clock to the request context so
// every layer (envelope timestamps, lockout windows, audit events) agrees on
// when the request happened.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
