package manifest

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the serialization used for a manifest file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from the manifest file name
func FormatFor(file string) Format {
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Document structs mirror the stored layout. Fields are declared in
// alphabetical order so both encoders write sorted keys.

type document struct {
	Hosts map[string]hostDoc `yaml:"hosts" toml:"hosts"`
	Tags  map[string]tagDoc  `yaml:"tags" toml:"tags"`
}

type hostDoc struct {
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Tags        []string `yaml:"tags" toml:"tags"`
}

type tagDoc struct {
	Description string              `yaml:"description,omitempty" toml:"description,omitempty"`
	Entries     map[string]entryDoc `yaml:"entries,omitempty" toml:"entries,omitempty"`
	Hooks       map[string]hookDoc  `yaml:"hooks,omitempty" toml:"hooks,omitempty"`
}

type entryDoc struct {
	Group  string `yaml:"group,omitempty" toml:"group,omitempty"`
	Mode   string `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Owner  string `yaml:"owner,omitempty" toml:"owner,omitempty"`
	Target string `yaml:"target,omitempty" toml:"target,omitempty"`
	Type   string `yaml:"type,omitempty" toml:"type,omitempty"`
}

type hookDoc struct {
	Command     string `yaml:"command" toml:"command"`
	Description string `yaml:"description" toml:"description"`
	Type        string `yaml:"type" toml:"type"`
}

func decodeDocument(data []byte, format Format) (*document, error) {
	var doc document
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func encodeDocument(doc *document, format Format) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(doc)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
