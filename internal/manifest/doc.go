// Package manifest models the page manifest of a mini-program style app
// (app.json): a main package page list plus an ordered list of sub-packages,
// each identified by its root and owning its own page list.
//
// # Document Format
//
//	{
//	  "pages": ["pages/index/index", "pages/user/index"],
//	  "subpackages": [
//	    {"root": "packageA", "pages": ["pages/a/1", "pages/a/2"]}
//	  ],
//	  "window": {"navigationBarTitleText": "demo"}
//	}
//
// Host pipelines spell the sub-package collection either "subpackages" or
// "subPackages". [FromDocument] reads whichever is present into the canonical
// [Manifest.Sections] field, and [Document.Render] writes the result back
// under every name that was present on input, leaving all other fields of the
// host document untouched.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrMalformed: the document has no usable page list or sections
//   - ErrInvalidFormat: file is not valid JSON/YAML
//   - ErrFileNotFound: manifest file does not exist
//   - ErrUnsupportedExt: unsupported file extension
package manifest
