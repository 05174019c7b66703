package txlog

// Phase is one stage in the per-call transaction lifecycle.
//
// Every intercepted invocation walks the same state machine:
//
//	STARTED -> IN_PROGRESS -> (COMPLETED | WARNING | ERROR) -> TERMINATED
//
// Exactly one of COMPLETED/WARNING/ERROR is emitted per invocation, and
// TERMINATED is emitted exactly once regardless of outcome.
type Phase int

const (
	PhaseStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
	PhaseWarning
	PhaseError
	PhaseTerminated
)

var phaseMarkers = [...]string{
	PhaseStarted:    "STARTED",
	PhaseInProgress: "IN_PROGRESS",
	PhaseCompleted:  "COMPLETED",
	PhaseWarning:    "WARNING",
	PhaseError:      "ERROR",
	PhaseTerminated: "TERMINATED",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseMarkers) {
		return "UNKNOWN"
	}
	return phaseMarkers[p]
}
