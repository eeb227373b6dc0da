package shared

import (
	"strings"

	"github.com/runoshun/flowsync/internal/domain"
)

// ValidateMessage trims whitespace from the message and validates it is not empty.
// Returns the trimmed message if valid, otherwise a validation error on field "text".
func ValidateMessage(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", domain.NewValidationError("text", "cannot be empty", domain.ErrEmptyMessage)
	}
	return trimmed, nil
}
