package util

import (
	"errors"
	"strings"
)

// ErrInvalidSegment is returned for names that cannot be used as one path
// segment.
var ErrInvalidSegment = errors.New("invalid path segment")

// SanitizeSegment turns name into a single storage key segment. Separators
// become underscores and traversal patterns are rejected.
func SanitizeSegment(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidSegment
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", ErrInvalidSegment
	}
	return s, nil
}
