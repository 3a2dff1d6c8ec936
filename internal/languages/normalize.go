package languages

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ligatures = strings.NewReplacer("æ", "ae", "Æ", "AE")

	// slugReplacer maps characters that are unsafe or noisy in paths.
	slugReplacer = strings.NewReplacer(
		" ", "-",
		"/", "-",
		"_", "-",
		"(", "-",
		")", "-",
		"*", "-",
		"!", "-",
		"–", "-",
		"é", "-",
		"è", "-",
		"'", "",
		`"`, "",
	)
)

// StripDiacritics removes combining marks after canonical decomposition,
// so "Mañana" becomes "Manana".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ExpandLigatures replaces ligatures with their letter pairs.
func ExpandLigatures(s string) string {
	return ligatures.Replace(s)
}

// Sanitize applies the path substitutions shared by task and language slugs.
func Sanitize(s string) string {
	return slugReplacer.Replace(s)
}

// TaskSlug derives the directory and file stem of a task from its title.
func TaskSlug(title string) string {
	return Sanitize(ExpandLigatures(title))
}

// trimResidue drops markup left around a header argument.
func trimResidue(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '|' || r == ',' || r == ';' || r == ':' || r == '='
	})
}

// Normalize lowercases a raw language label and strips markup residue,
// diacritics and ligatures.
func Normalize(raw string) string {
	return strings.ToLower(ExpandLigatures(StripDiacritics(trimResidue(raw))))
}

// key is the form under which table entries are stored and looked up.
func key(raw string) string {
	return Sanitize(Normalize(raw))
}
