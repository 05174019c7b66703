// Package middleware holds transport-agnostic HTTP middlewares that enrich
// the request context. Envelope-writing middlewares live with the transport
// layer.
package middleware

import (
	"net"
	"net/http"
	"strings"

	"authgw/pkg/requestcontext"
)

// ClientMetadata records the caller's IP and user agent on the context so
// domain services (lockout, audit) can use them without seeing the request.
// Honors the first X-Forwarded-For hop when present.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ctx := requestcontext.WithClientMetadata(r.Context(), ip, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
