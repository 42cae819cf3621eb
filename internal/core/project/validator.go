package project

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the longest accepted project name, in characters.
// It matches the npm package name limit.
const MaxNameLength = 214

// MaxNameBytes is the longest directory name most filesystems accept
// (NAME_MAX).
const MaxNameBytes = 255

// reservedChars cannot appear in a directory name on at least one
// supported platform.
const reservedChars = `/\<>:"|?*`

// NormalizeProjectName applies NFC normalization and trims surrounding
// whitespace. Validation and directory creation both use this form.
func NormalizeProjectName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

// ValidateProjectName reports whether name can be used as the target
// directory name. The returned error is a *NameError wrapping one of
// ErrEmptyName, ErrInvalidChars, or ErrNameTooLong.
func ValidateProjectName(name string) error {
	n := NormalizeProjectName(name)

	if n == "" {
		return &NameError{Message: "name cannot be empty", Wrapped: ErrEmptyName}
	}
	if n == "." || n == ".." {
		return &NameError{Name: n, Message: "name cannot be a relative path", Wrapped: ErrInvalidChars}
	}
	if i := strings.IndexAny(n, reservedChars); i >= 0 {
		return &NameError{
			Name:    n,
			Message: "name cannot contain " + string(n[i]),
			Wrapped: ErrInvalidChars,
		}
	}
	for _, r := range n {
		if unicode.IsControl(r) {
			return &NameError{Name: n, Message: "name cannot contain control characters", Wrapped: ErrInvalidChars}
		}
	}
	if utf8.RuneCountInString(n) > MaxNameLength {
		return &NameError{Name: n, Message: "name must be at most 214 characters", Wrapped: ErrNameTooLong}
	}
	if len(n) > MaxNameBytes {
		return &NameError{Name: n, Message: "name must be at most 255 bytes when encoded as UTF-8", Wrapped: ErrNameTooLong}
	}

	return nil
}
