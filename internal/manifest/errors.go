package manifest

import "errors"

// Sentinel errors for the manifest package.
var (
	// ErrMalformed indicates the document cannot be interpreted as a page manifest.
	ErrMalformed = errors.New("malformed page manifest")

	// ErrInvalidFormat indicates the manifest file is not valid JSON or YAML.
	ErrInvalidFormat = errors.New("manifest must be valid JSON or YAML")

	// ErrFileNotFound indicates the manifest file does not exist.
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrUnsupportedExt indicates an unsupported file extension.
	ErrUnsupportedExt = errors.New("unsupported file extension (use .json, .yaml, or .yml)")
)
