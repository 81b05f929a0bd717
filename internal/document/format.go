package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/stylebag/internal/objpath"
	"github.com/dshills/stylebag/internal/responsive"
)

// Format is a document encoding.
type Format uint8

const (
	// FormatTOML encodes documents as TOML.
	FormatTOML Format = iota
	// FormatJSON encodes documents as indented JSON.
	FormatJSON
	// FormatYAML encodes documents as YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Marshal encodes d in format f.
func Marshal(d *Document, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		return toml.Marshal(d)
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Unmarshal decodes data in format f. The source name is used in errors.
func Unmarshal(source string, data []byte, f Format) (*Document, error) {
	d := New()

	var err error
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, d)
	case FormatJSON:
		err = json.Unmarshal(data, d)
	case FormatYAML:
		err = yaml.Unmarshal(data, d)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, &ParseError{Path: source, Format: f, Message: err.Error(), Err: err}
	}

	if d.Entities == nil {
		d.Entities = make(map[string]*responsive.LocalStyles)
	}
	// yaml.v3 gives nested mappings the type of the enclosing Bag.
	for _, ls := range d.Entities {
		if ls != nil && ls.Instance != nil {
			objpath.NormalizeMap(ls.Instance)
		}
	}
	return d, nil
}
