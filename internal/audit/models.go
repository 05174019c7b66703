package audit

import "time"

// Login outcomes recorded on the trail.
const (
	OutcomeSuccess  = "SUCCESS"
	OutcomeRejected = "REJECTED"
	OutcomeLockedOut = "LOCKED_OUT"
	OutcomeError    = "ERROR"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	TransactionID string    `json:"transactionId"`
	Username      string    `json:"username"`
	Action        string    `json:"action"`
	Outcome       string    `json:"outcome"`
	Reason        string    `json:"reason,omitempty"`
	ClientIP      string    `json:"clientIp,omitempty"`
	UserAgent     string    `json:"userAgent,omitempty"`
}
