package profiles

import "errors"

var (
	// ErrNotFound is returned when no résumé is stored under a slug.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidData is returned when stored résumé data fails to decode or
	// validate.
	ErrInvalidData = errors.New("invalid profile data")
)
