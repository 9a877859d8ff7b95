package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors for malformed or dangerous identifiers. Values that fail
// validation never reach the version-control collaborator.
var (
	ErrInvalidReference = errors.New("invalid revision reference")
	ErrInvalidPath      = errors.New("invalid repository path")
)

// dangerousChars are shell metacharacters that must never appear in a
// revision or path handed to the collaborator.
const dangerousChars = ";&|`$()'\"<>"

// referencePattern accepts abbreviated through full commit hashes.
var referencePattern = regexp.MustCompile(`^[a-fA-F0-9]{7,40}$`)

// SanitizeReference validates and normalizes a revision identifier. The
// label names the value in error messages (e.g. "base", "head").
func SanitizeReference(raw, label string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidReference, label)
	}
	if strings.ContainsAny(cleaned, dangerousChars) {
		return "", fmt.Errorf("%w: %s contains forbidden characters", ErrInvalidReference, label)
	}
	if !referencePattern.MatchString(cleaned) {
		return "", fmt.Errorf("%w: %s %q is not a 7-40 character hex hash", ErrInvalidReference, label, cleaned)
	}
	return cleaned, nil
}

// SanitizeFilePath validates a repository-relative file path.
func SanitizeFilePath(raw, label string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidPath, label)
	}
	if strings.ContainsAny(cleaned, dangerousChars) {
		return "", fmt.Errorf("%w: %s contains forbidden characters", ErrInvalidPath, label)
	}
	if strings.HasPrefix(cleaned, "/") {
		return "", fmt.Errorf("%w: %s must be repository-relative, got absolute path", ErrInvalidPath, label)
	}
	if strings.HasPrefix(cleaned, "-") {
		return "", fmt.Errorf("%w: %s must not start with %q", ErrInvalidPath, label, "-")
	}
	for _, segment := range strings.FieldsFunc(cleaned, isPathSeparator) {
		if segment == ".." {
			return "", fmt.Errorf("%w: %s contains a parent-directory segment", ErrInvalidPath, label)
		}
	}
	return cleaned, nil
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
