package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk encoding of a definition file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat returns the Format named by s (case-insensitive, "yml" accepted).
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	case "toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// FormatFromPath selects the format by file extension. Unknown extensions
// are read as JSON, the historical format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// tomlDocument wraps the item list, since a TOML document must be a table.
type tomlDocument struct {
	Items []Item `toml:"items"`
}

// Decode parses raw definition data in the given format.
func Decode(format Format, data []byte) (Definition, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		var doc tomlDocument
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("decoding TOML: %w", err)
		}
		return Definition(doc.Items), nil
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}
}

func decodeJSON(data []byte) (Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("decoding JSON at offset %d: %w", syntaxErr.Offset, err)
		}
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return def, nil
}

func decodeYAML(data []byte) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, nil
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return def, nil
}

// Encode serializes a definition in the given format.
func Encode(format Format, def Definition) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(def)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tomlDocument{Items: def}); err != nil {
			return nil, fmt.Errorf("encoding TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}
}
