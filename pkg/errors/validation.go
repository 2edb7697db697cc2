package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier arriving from an external
// surface (HTTP path segment, TUI input, JSON document).
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No whitespace
//   - Maximum length of 128 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidNodeID, "node id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidNodeID, "node id cannot contain whitespace")
		}
	}

	return nil
}

// ValidateLabel validates a node or edge label. Labels are free text and
// may be empty; only control characters (except tab) and excessive length
// are rejected.
func ValidateLabel(label string) error {
	const maxLabelLength = 512
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) && r != '\t' {
			return New(ErrCodeInvalidInput, "label contains control characters")
		}
	}

	return nil
}

// ValidateSessionID validates a session identifier from a URL path.
// Session IDs are UUIDs, so a loose shape check is enough here; lookups
// decide existence.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "session id too long")
	}

	if strings.ContainsAny(id, "/\\ \t\n") {
		return New(ErrCodeInvalidInput, "session id contains invalid characters")
	}

	return nil
}
