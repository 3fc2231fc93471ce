package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sigsyaml "sigs.k8s.io/yaml"
)

// Load reads a host document from a .json, .yaml or .yml file.
func Load(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-provided manifest
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("reading manifest file: %w", err)
	}

	return Decode(data, filepath.Ext(path))
}

// Decode parses a host document from raw bytes. ext selects the accepted
// syntax; JSON input is always valid YAML, so both go through the same
// decoder and produce JSON-compatible values.
func Decode(data []byte, ext string) (map[string]interface{}, error) {
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}

	var doc map[string]interface{}
	if err := sigsyaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidFormat)
	}

	return doc, nil
}

// LoadDocument loads a file and reads its page manifest.
func LoadDocument(path string) (*Document, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	return FromDocument(doc)
}
