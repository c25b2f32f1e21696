package dictionary

import "errors"

var (
	// ErrNotDirectory is returned when a model path is not a directory.
	ErrNotDirectory = errors.New("dictionary: model path is not a directory")

	// ErrUnknownTransform is returned when a manifest names a transform that
	// has not been registered.
	ErrUnknownTransform = errors.New("dictionary: unknown transform")

	// ErrUnknownManifestKey is returned for manifest keys that are not understood.
	ErrUnknownManifestKey = errors.New("dictionary: unknown manifest key")

	// ErrNoModel is returned by Runtime.Reload when neither a directory nor a
	// previously loaded model is available.
	ErrNoModel = errors.New("dictionary: no model loaded")
)
