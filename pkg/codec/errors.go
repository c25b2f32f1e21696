package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned when no codec handles a file.
	ErrUnknownFormat = errors.New("codec: unknown document format")

	// ErrUnsupportedVersion is returned for documents newer than this codec.
	ErrUnsupportedVersion = errors.New("codec: unsupported document version")

	// ErrMissingPhon is returned for entries without a surface form.
	ErrMissingPhon = errors.New("codec: entry is missing phon")
)

// DocumentError reports a malformed document. Index is the offending entry's
// position in content, or -1 for document-level problems.
type DocumentError struct {
	Source string
	Index  int
	Err    error
}

func (e *DocumentError) Error() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", src, e.Err)
	}
	return fmt.Sprintf("%s: entry %d: %v", src, e.Index, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }
