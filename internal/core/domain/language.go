package domain

// Language is a language header resolved against the language directory.
type Language struct {
	// Name is the canonical display name (e.g. "Python").
	Name string

	// Slug is the filesystem-safe directory name (e.g. "python").
	Slug string

	// Extension is the file extension without the dot (e.g. "py").
	Extension string
}
