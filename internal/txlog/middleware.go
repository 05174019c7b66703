package txlog

import (
	"fmt"
	"net/http"
	"time"

	"authgw/pkg/requestcontext"
)

// TransactionIDHeader exposes the correlation id to callers on every response.
const TransactionIDHeader = "X-Transaction-ID"

// statusRecorder captures the response status for the completion record.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware wraps every inbound HTTP request in the transaction lifecycle.
// It mints the correlation id for the call (or reuses one supplied by an
// upstream gateway through the transaction header), records method, path and
// caller address on STARTED, and branches on the response status: below 400
// completes, 400 and up is a recoverable WARNING. A panic in the handler
// chain is recorded as ERROR and re-raised for the recovery middleware.
func Middleware(i *Interceptor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if i == nil {
				next.ServeHTTP(w, r)
				return
			}

			txnID := r.Header.Get(TransactionIDHeader)
			if txnID == "" {
				txnID = NewTransactionID()
			}

			ctx := requestcontext.WithTransactionID(r.Context(), txnID)
			ctx = requestcontext.WithHTTPCall(ctx, requestcontext.HTTPInfo{
				Method:     r.Method,
				Path:       r.URL.Path,
				RemoteAddr: r.RemoteAddr,
			})
			w.Header().Set(TransactionIDHeader, txnID)

			op := fmt.Sprintf("http.%s %s", r.Method, r.URL.Path)
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				i.emit(ctx, PhaseTerminated, op, fmt.Sprintf("Total Duration: %dms", time.Since(start).Milliseconds()), nil)
			}()

			i.emit(ctx, PhaseStarted, op, httpContext(ctx), nil)
			i.emit(ctx, PhaseInProgress, op, "", requestSummary(r))

			defer func() {
				if p := recover(); p != nil {
					i.emit(ctx, PhaseError, op, fmt.Sprintf("Duration: %dms | Error: %v", time.Since(start).Milliseconds(), p), nil)
					panic(p)
				}
				note := fmt.Sprintf("Status: %d | Duration: %dms", rec.status, time.Since(start).Milliseconds())
				if rec.status >= http.StatusBadRequest {
					i.emit(ctx, PhaseWarning, op, note, nil)
				} else {
					i.emit(ctx, PhaseCompleted, op, note, nil)
				}
			}()

			next.ServeHTTP(rec, r.WithContext(ctx))
		})
	}
}

// requestSummary renders the parts of the request that are safe to log.
// The body is never read here; handlers log their own sanitized arguments.
func requestSummary(r *http.Request) string {
	return fmt.Sprintf("query=%q content_length=%d user_agent=%q",
		r.URL.RawQuery, r.ContentLength, r.UserAgent())
}
