package errors

import (
	"strings"
	"unicode"
)

const maxNameLength = 128

// ValidateName validates a diagram name. Names are free text shown in titles
// and pickers; callers that derive file names from them sanitize separately.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "diagram name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "diagram name too long (max %d characters)", maxNameLength)
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "diagram name cannot contain %q", "..")
	}
	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidName, "diagram name cannot contain path separators: %q", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "diagram name contains control characters")
		}
	}
	return nil
}

// ValidatePath validates an output path supplied by a user.
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

	for _, elem := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if elem == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateDimension validates a drawing width or height in pixels.
func ValidateDimension(what string, v float64) error {
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %g", what, v)
	}
	const maxDimension = 10000
	if v > maxDimension {
		return New(ErrCodeInvalidInput, "%s too large (max %d), got %g", what, maxDimension, v)
	}
	return nil
}
