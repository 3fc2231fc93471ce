package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	sigsyaml "sigs.k8s.io/yaml"
)

// Format is an output serialization format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string yields "".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (available: json, yaml)", s)
	}
}

// FormatFromPath derives the format from a file extension, returning
// fallback for unknown or missing extensions.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return fallback
	}
}

// Serialize encodes doc in the given format with a trailing newline.
// Map keys are emitted in sorted order, so output is deterministic.
func Serialize(doc map[string]interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		b, err := sigsyaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("serializing YAML: %w", err)
		}

		return ensureNewline(b), nil
	case FormatJSON, "":
		var buf bytes.Buffer

		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")

		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("serializing JSON: %w", err)
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func ensureNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}

	return b
}
