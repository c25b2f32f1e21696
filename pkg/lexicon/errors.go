package lexicon

import "errors"

var (
	// ErrEmptyPhon is returned when an entry without a surface form would be
	// stored. Such an entry would make segmentation non-terminating.
	ErrEmptyPhon = errors.New("lexicon: entry has empty phon")

	// ErrNilTransform is returned by Rewrite and Derive when no transform is given.
	ErrNilTransform = errors.New("lexicon: nil transform")
)
