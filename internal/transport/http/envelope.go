// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services and translate outcomes into the uniform response envelope; no
// business logic lives here.
package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	dErrors "authgw/pkg/domain-errors"
	"authgw/pkg/requestcontext"
)

// Meta describes the response itself. Present on every envelope.
type Meta struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Path       string `json:"path"`
	Timestamp  string `json:"timestamp"`
}

// ErrorDetails is the error half of the envelope.
type ErrorDetails struct {
	Code        string                        `json:"code"`
	Description string                        `json:"description"`
	Fields      map[string]dErrors.FieldError `json:"fields,omitempty"`
}

// Envelope is the single response shape of the gateway. Exactly one of Data
// and Error is set.
type Envelope struct {
	Meta  Meta          `json:"meta"`
	Data  any           `json:"data,omitempty"`
	Error *ErrorDetails `json:"error,omitempty"`
}

func newMeta(r *http.Request, status int) Meta {
	message := http.StatusText(status)
	if status == http.StatusOK {
		message = "Success"
	}
	return Meta{
		Message:    message,
		StatusCode: status,
		Path:       r.URL.Path,
		Timestamp:  requestcontext.Now(r.Context()).Format(time.RFC3339),
	}
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, r *http.Request, status int, data any) {
	write(w, Envelope{Meta: newMeta(r, status), Data: data}, status)
}

// WriteError translates a classified error into its envelope. Unauthorized
// and internal failures get fixed descriptions so upstream detail never
// reaches the caller; everything else surfaces its classified message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	details := &ErrorDetails{Code: string(code)}
	var de *dErrors.Error
	if errors.As(err, &de) {
		details.Description = de.Message
		details.Fields = de.Fields
	}

	switch code {
	case dErrors.CodeUnauthorized:
		details.Description = "Error de autenticación"
	case dErrors.CodeInternal:
		details.Description = "Ha ocurrido un error interno en el servidor"
	}

	write(w, Envelope{Meta: newMeta(r, status), Error: details}, status)
}

func write(w http.ResponseWriter, env Envelope, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
