package render

import "errors"

var (
	// ErrFontMetrics means the PDF fonts could not be set up; layout is impossible.
	ErrFontMetrics = errors.New("font metrics unavailable")
	// ErrSerialize means a finished document could not be written to bytes.
	ErrSerialize = errors.New("document serialization failed")
)
