package languages

import (
	"strings"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
)

// Directory resolves header labels against the wiki's language pages
// and a Table.
type Directory struct {
	table *Table

	// names maps a lowercased language name to its display form.
	names map[string]string
}

// Verify interface compliance.
var _ driven.LanguageDirectory = (*Directory)(nil)

// NewDirectory indexes language category members by lowercased name.
// The first-seen form of a name is kept for display.
func NewDirectory(table *Table, members []domain.CategoryMember) *Directory {
	d := &Directory{
		table: table,
		names: make(map[string]string, len(members)),
	}
	for _, m := range members {
		name := strings.TrimSpace(domain.StripCategoryPrefix(m.Title))
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := d.names[lower]; !ok {
			d.names[lower] = name
		}
	}
	return d
}

// Len returns the number of distinct language names.
func (d *Directory) Len() int {
	return len(d.names)
}

// Canonical returns the display name of a raw label: the wiki's spelling
// when the label names a language page, the trimmed label otherwise.
func (d *Directory) Canonical(raw string) string {
	label := trimResidue(raw)
	if name, ok := d.names[strings.ToLower(label)]; ok {
		return name
	}
	return label
}

// Slug returns the directory name used for a raw label.
//
// Overrides are checked on the whole label first, so "F-Sharp|F#" maps to
// a single slug. Otherwise only the part before the first pipe is kept.
func (d *Directory) Slug(raw string) string {
	name := d.Canonical(raw)
	if o, ok := d.table.Override(name); ok {
		return o.Slug
	}

	if head, _, found := strings.Cut(name, "|"); found {
		name = d.Canonical(head)
		if o, ok := d.table.Override(name); ok {
			return o.Slug
		}
	}
	return key(name)
}

// Extension returns the file extension of a language name or slug.
// An unknown language uses its own slug.
func (d *Directory) Extension(name string) string {
	if o, ok := d.table.Override(name); ok {
		return o.Extension
	}
	if ext, ok := d.table.Extension(name); ok {
		return ext
	}
	return key(name)
}

// Resolve maps a raw label to its display name, slug and extension.
func (d *Directory) Resolve(raw string) domain.Language {
	slug := d.Slug(raw)
	return domain.Language{
		Name:      d.Canonical(raw),
		Slug:      slug,
		Extension: d.Extension(slug),
	}
}
