package txlog

import (
	"fmt"
	"strings"
)

const (
	// RedactionPlaceholder replaces any payload that looks credential-bearing.
	RedactionPlaceholder = "***SENSITIVE_DATA_HIDDEN***"
	// TruncationMarker is appended to payloads cut at the configured cap.
	TruncationMarker = "..."
)

// sanitize renders a payload for logging. A payload whose textual form
// contains a password marker is replaced wholesale, never partially; anything
// longer than cap characters is truncated with a marker appended.
func sanitize(v any, cap int) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%+v", v)
	if strings.Contains(strings.ToLower(s), "password") {
		return RedactionPlaceholder
	}
	if cap > 0 && len(s) > cap {
		return s[:cap] + TruncationMarker
	}
	return s
}
