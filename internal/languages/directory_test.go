package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

func newDirectory(t *testing.T, titles ...string) *Directory {
	t.Helper()
	table, err := LoadTable()
	require.NoError(t, err)

	members := make([]domain.CategoryMember, 0, len(titles))
	for i, title := range titles {
		members = append(members, domain.CategoryMember{PageID: uint64(i + 1), Title: title})
	}
	return NewDirectory(table, members)
}

func TestNewDirectory_FirstSeenFormWins(t *testing.T) {
	d := newDirectory(t, "Category:JavaScript", "Category:Javascript", "Category:Go", "Category:")

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "JavaScript", d.Canonical("javascript"))
	assert.Equal(t, "JavaScript", d.Canonical(" JAVASCRIPT "))
	assert.Equal(t, "Go", d.Canonical("go"))
}

func TestDirectory_CanonicalUnknown(t *testing.T) {
	d := newDirectory(t)

	assert.Equal(t, "Frobnitz", d.Canonical("  Frobnitz|"))
}

func TestDirectory_Resolve(t *testing.T) {
	d := newDirectory(t, "Category:Python", "Category:F Sharp", "Category:Common Lisp", "Category:Mathematica")

	tests := []struct {
		raw      string
		expected domain.Language
	}{
		{"Python", domain.Language{Name: "Python", Slug: "python", Extension: "py"}},
		{"python ", domain.Language{Name: "Python", Slug: "python", Extension: "py"}},
		{"Python 3", domain.Language{Name: "Python 3", Slug: "python", Extension: "py"}},
		{"F-Sharp|F#", domain.Language{Name: "F-Sharp|F#", Slug: "f-sharp", Extension: "fs"}},
		{"F#", domain.Language{Name: "F#", Slug: "f-sharp", Extension: "fs"}},
		{"Common Lisp", domain.Language{Name: "Common Lisp", Slug: "common-lisp", Extension: "lisp"}},
		{"Mathematica|Wolfram Language", domain.Language{Name: "Mathematica|Wolfram Language", Slug: "mathematica", Extension: "nb"}},
		{"C++", domain.Language{Name: "C++", Slug: "c++", Extension: "cpp"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Resolve(tt.raw))
		})
	}
}

func TestDirectory_UnknownLanguageFallsBackToSlug(t *testing.T) {
	d := newDirectory(t, "Category:Python")

	lang := d.Resolve("Frob Nitz (2.0)")

	assert.Equal(t, "frob-nitz--2.0-", lang.Slug)
	assert.Equal(t, lang.Slug, lang.Extension)
}

func TestDirectory_DiacriticsAndLigatures(t *testing.T) {
	d := newDirectory(t)

	assert.Equal(t, "mediaeval-lang", d.Slug("Mediæval Lang"))
	assert.Equal(t, "manana", d.Slug("Mañana"))
	assert.Equal(t, "manana", d.Extension("Mañana"))
}

func TestDirectory_IsDeterministic(t *testing.T) {
	d := newDirectory(t, "Category:Go")

	first := d.Resolve("Some New Lang")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.Resolve("Some New Lang"))
	}
}
