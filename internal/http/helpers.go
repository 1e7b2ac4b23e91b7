package http

import (
	"strings"

	"github.com/google/uuid"
)

// sanitizeInput removes control characters and trims whitespace. Used for
// header values; filter values go through core.CleanSelectionValue.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	return "req_" + uuid.NewString()
}
