package httptransport

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "authgw/pkg/domain-errors"
)

// Recovery converts panics into a 500 envelope. It sits outside the
// transaction middleware so the panic is already on the transaction log when
// the envelope is written.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"panic", rec,
						"path", r.URL.Path,
					)
					WriteError(w, r, dErrors.New(dErrors.CodeInternal, "unhandled failure"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireJSON rejects bodied requests that do not declare a JSON payload.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "Content-Type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
