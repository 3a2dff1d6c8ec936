package driven

// Extractor writes the code samples of one task page beneath a category
// directory.
type Extractor interface {
	// Extract parses wikitext and writes one file per code block under
	// root. It returns the written paths, relative to root.
	//
	// Files are written as blocks are found, so a page failing halfway
	// may leave some files behind.
	Extract(langs LanguageDirectory, root, title, wikitext string) ([]string, error)
}
