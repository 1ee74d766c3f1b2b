// Package schema holds the canonical parameter registry the engine maps
// spreadsheet columns onto. The registry is built once at startup and is
// immutable afterwards; entry order is fixed and drives tie-breaking.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"sheetnorm/internal"
)

//go:embed default_schema.toml
var defaultTOML []byte

// Entry is one canonical parameter name with the alternate headers known to
// refer to it. Synonym lists may overlap across entries; scoring resolves that.
type Entry struct {
	Name     string   `toml:"name"`
	Synonyms []string `toml:"synonyms"`
}

type Schema struct {
	entries []Entry
	byName  map[string]int
}

type schemaFile struct {
	Params []Entry `toml:"param"`
}

// New builds a registry from the given entries, rejecting empty schemas,
// unnamed entries and repeated canonical names.
func New(entries []Entry) (*Schema, error) {
	if len(entries) == 0 {
		return nil, internal.Configf("schema has no entries")
	}

	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, internal.Configf("schema entry %d has no canonical name", i)
		}
		if _, dup := byName[e.Name]; dup {
			return nil, internal.Configf("canonical name repeated in schema: %q", e.Name)
		}
		byName[e.Name] = i
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Schema{entries: copied, byName: byName}, nil
}

// Default returns the registry parsed from the embedded semiconductor
// parameter definition.
func Default() (*Schema, error) {
	return parse(defaultTOML)
}

// LoadFile reads a registry from a TOML file in the same format as the
// embedded default.
func LoadFile(path string) (*Schema, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return parse(blob)
}

func parse(blob []byte) (*Schema, error) {
	var file schemaFile
	if err := toml.Unmarshal(blob, &file); err != nil {
		return nil, internal.Configf("parse schema: %v", err)
	}
	return New(file.Params)
}

// Entries exposes the registry in its fixed iteration order. Callers must not
// mutate the returned slice.
func (s *Schema) Entries() []Entry { return s.entries }

func (s *Schema) Len() int { return len(s.entries) }

func (s *Schema) Lookup(name string) (Entry, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}
