package driving

import "github.com/custodia-labs/rosetta-mirror/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save validates and persists application settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its dotted key, e.g. "git.enabled".
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
