// Package verifier checks credentials against the legacy identity backend.
//
// Two interchangeable implementations exist: Mock answers from a fixed
// identity table, Remote calls the real service. A Selector picks between
// them per call from a configuration switch; callers see the same contract
// either way.
package verifier

import (
	"context"
	"net/http"
)

// Result is the structured outcome of one verification. StatusCode 200 means
// verified; 401 means the user was not found; 500 is an internal verifier
// failure. Immutable once produced.
type Result struct {
	StatusCode   int    `json:"statusCode"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Age          int    `json:"age"`
	ProfilePhoto string `json:"profilePhotoRef"`
	Video        string `json:"mediaRef"`
}

// Verified reports whether the identity was positively confirmed.
func (r Result) Verified() bool {
	return r.StatusCode == http.StatusOK
}

// Verifier is the pluggable backend-verification contract.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (Result, error)
}
