package languages

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
)

//go:embed languages.yaml
var embeddedTable []byte

// Override maps a combined or variant label to a fixed slug and extension.
type Override struct {
	Slug      string `yaml:"slug"`
	Extension string `yaml:"extension"`
}

// tableFile is the on-disk layout of a language table.
type tableFile struct {
	Extensions map[string]string   `yaml:"extensions"`
	Overrides  map[string]Override `yaml:"overrides"`
}

// Table holds the static language to extension table and the overrides.
// It is immutable and safe for concurrent use.
type Table struct {
	extensions map[string]string
	overrides  map[string]Override
}

// Verify interface compliance.
var _ driven.LanguageCatalog = (*Table)(nil)

var (
	loadOnce    sync.Once
	loadedTable *Table
	loadErr     error
)

// LoadTable parses the embedded table. The result is shared by callers.
func LoadTable() (*Table, error) {
	loadOnce.Do(func() {
		loadedTable, loadErr = ParseTable(embeddedTable)
	})
	return loadedTable, loadErr
}

// ParseTable parses a YAML language table.
// Keys differing only in case, diacritics or slug characters are the same
// key; two such keys with different values are rejected.
func ParseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse language table: %w", err)
	}

	t := &Table{
		extensions: make(map[string]string, len(file.Extensions)),
		overrides:  make(map[string]Override, len(file.Overrides)),
	}

	for name, ext := range file.Extensions {
		k := key(name)
		if ext == "" {
			return nil, fmt.Errorf("parse language table: %q has no extension", name)
		}
		if prev, ok := t.extensions[k]; ok && prev != ext {
			return nil, fmt.Errorf("parse language table: %q conflicts with another entry", name)
		}
		t.extensions[k] = ext
	}

	for label, o := range file.Overrides {
		k := key(label)
		if o.Slug == "" || o.Extension == "" {
			return nil, fmt.Errorf("parse language table: override %q needs slug and extension", label)
		}
		if prev, ok := t.overrides[k]; ok && prev != o {
			return nil, fmt.Errorf("parse language table: override %q conflicts with another entry", label)
		}
		t.overrides[k] = o
	}

	return t, nil
}

// Extension looks up the static extension of a language.
func (t *Table) Extension(name string) (string, bool) {
	ext, ok := t.extensions[key(name)]
	return ext, ok
}

// Override looks up the override of a header label.
func (t *Table) Override(label string) (Override, bool) {
	o, ok := t.overrides[key(label)]
	return o, ok
}

// Len returns the number of static extension entries.
func (t *Table) Len() int {
	return len(t.extensions)
}

// Directory builds a directory from the members of the language category.
func (t *Table) Directory(members []domain.CategoryMember) driven.LanguageDirectory {
	return NewDirectory(t, members)
}
