package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// graphNameRegex matches names accepted for graphs in records and cache keys.
var graphNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)

// ValidateGraphName validates a graph name used in result records, archive
// documents and cache keys. Names are usually derived from input file names.
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "graph name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "graph name contains invalid control characters")
		}
	}

	if !graphNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid graph name: %q", name)
	}

	return nil
}

// ValidatePath validates an output path from configuration or flags.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateTimeLimit checks that a solver time budget is positive and sane.
func ValidateTimeLimit(d time.Duration) error {
	if d <= 0 {
		return New(ErrCodeInvalidConfig, "time limit must be positive, got %s", d)
	}
	if d > 7*24*time.Hour {
		return New(ErrCodeInvalidConfig, "time limit too large (max 168h), got %s", d)
	}
	return nil
}
