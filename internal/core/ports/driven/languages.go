package driven

import "github.com/custodia-labs/rosetta-mirror/internal/core/domain"

// LanguageDirectory resolves raw language tags found in wikitext.
// A directory is immutable once built and safe for concurrent use.
type LanguageDirectory interface {
	// Resolve maps a raw tag (a header argument or a lang attribute)
	// to a language. Unknown tags fall back to their slug as extension.
	Resolve(raw string) domain.Language
}

// LanguageCatalog builds directories from the wiki's list of language
// pages. Members carry the "Category:" prefix as the wiki returns it.
type LanguageCatalog interface {
	Directory(members []domain.CategoryMember) LanguageDirectory
}
