package domain

import "fmt"

const unknownDescription = "Unknown"

// StateBackend selects where tallies and the last timestamp are persisted.
type StateBackend string

// Available state backends.
const (
	// StateBackendFile stores one JSON document per tally and one for the timestamp.
	StateBackendFile StateBackend = "file"

	// StateBackendSQLite stores tallies and the timestamp in a SQLite database.
	StateBackendSQLite StateBackend = "sqlite"
)

// IsValid returns true if the state backend is recognised.
func (b StateBackend) IsValid() bool {
	switch b {
	case StateBackendFile, StateBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StateBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StateBackend) Description() string {
	switch b {
	case StateBackendFile:
		return "JSON files next to the mirror"
	case StateBackendSQLite:
		return "SQLite database next to the mirror"
	default:
		return unknownDescription
	}
}

// APISettings holds remote wiki API configuration.
type APISettings struct {
	// URL is the api.php endpoint.
	URL string

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond paces requests to the wiki.
	RequestsPerSecond float64
}

// MirrorSettings holds mirror tree configuration.
type MirrorSettings struct {
	// Dir is the root of the mirror tree and of its git repository.
	Dir string

	// Categories are the task categories to mirror.
	Categories []string

	// LanguageCategory lists every language page of the wiki.
	LanguageCategory string
}

// GitSettings holds version-control configuration.
type GitSettings struct {
	// Enabled turns commits on. When false, files and state are still written.
	Enabled bool

	AuthorName  string
	AuthorEmail string
}

// Settings holds all application settings.
type Settings struct {
	API    APISettings
	Mirror MirrorSettings
	State  StateBackend
	Git    GitSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		API: APISettings{
			URL:               "https://rosettacode.org/w/api.php",
			UserAgent:         "rosetta-mirror/dev (+https://github.com/custodia-labs/rosetta-mirror)",
			RequestsPerSecond: 2,
		},
		Mirror: MirrorSettings{
			Dir:              ".",
			Categories:       DefaultCategories(),
			LanguageCategory: "Programming_Languages",
		},
		State: StateBackendFile,
		Git: GitSettings{
			Enabled:     true,
			AuthorName:  "rosetta-mirror",
			AuthorEmail: "rosetta-mirror@localhost",
		},
	}
}

// DefaultCategories returns the task categories mirrored by default.
func DefaultCategories() []string {
	return []string{
		"Programming_Tasks",
		"Draft_Programming_Tasks",
		"Simple",
	}
}

// Validate checks the settings for values the sync cannot work with.
func (s *Settings) Validate() error {
	if s.API.URL == "" {
		return fmt.Errorf("%w: api.url is empty", ErrInvalidInput)
	}
	if s.API.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: api.requests_per_second must be positive", ErrInvalidInput)
	}
	if s.Mirror.Dir == "" {
		return fmt.Errorf("%w: mirror.dir is empty", ErrInvalidInput)
	}
	if len(s.Mirror.Categories) == 0 {
		return fmt.Errorf("%w: mirror.categories is empty", ErrInvalidInput)
	}
	if s.Mirror.LanguageCategory == "" {
		return fmt.Errorf("%w: mirror.language_category is empty", ErrInvalidInput)
	}
	if !s.State.IsValid() {
		return fmt.Errorf("%w: unknown state backend %q", ErrInvalidInput, s.State)
	}
	return nil
}
