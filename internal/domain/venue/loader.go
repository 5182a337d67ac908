package venue

import (
	"context"
	"fmt"
	"maps"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Venue names contain dots, so keys are split on a delimiter they never use.
const keyDelim = "::"

// LoadFile reads a YAML table and merges it over the built-in one:
//
//	version: "2024.2"
//	venues:
//	  "Narendra Modi Stadium, Ahmedabad": "Narendra Modi Stadium"
//
// File entries win over built-in entries with the same raw name.
func LoadFile(_ context.Context, path string) (*Mapping, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadMapping, path, err)
	}

	version := k.String("version")
	if version == "" {
		version = DefaultVersion + "+" + path
	}

	raw := maps.Clone(defaultTable)
	maps.Copy(raw, k.StringMap("venues"))

	m, err := NewMapping(version, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadMapping, path, err)
	}
	return m, nil
}
