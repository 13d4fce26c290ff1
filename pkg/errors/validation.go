package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxTextLength bounds free-text fields such as exercise names and day descriptions.
const maxTextLength = 256

// ValidateText validates a free-text field that ends up in a rendered sheet.
//
// The validation rules are intentionally conservative:
//   - No control characters (tab and newline are rejected too, cells are single-line)
//   - Maximum length of 256 characters
//
// Empty text is allowed; callers that require a value check for it themselves.
func ValidateText(field, text string) error {
	if len(text) > maxTextLength {
		return New(ErrCodeInvalidWorkout, "%s too long (max %d characters)", field, maxTextLength)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWorkout, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// usernameRegex matches identities accepted from auth tokens and the command line.
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@+-]{0,127}$`)

// ValidateUsername validates the identity a sheet is rendered for.
// It appears in document metadata and scopes store lookups.
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "username cannot be empty")
	}
	if !usernameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid username: %q", name)
	}
	return nil
}

// ValidateFilename validates a workout file name received over the network.
// It ensures the name is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}
	if strings.ContainsAny(filename, "/\\\x00") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "filename cannot be a hidden file")
	}
	return nil
}
