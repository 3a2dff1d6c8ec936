package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIURL           = "api.url"
	keyAPIUserAgent     = "api.user_agent"
	keyAPIRate          = "api.requests_per_second"
	keyMirrorDir        = "mirror.dir"
	keyMirrorCategories = "mirror.categories"
	keyLanguageCategory = "mirror.language_category"
	keyStateBackend     = "state.backend"
	keyGitEnabled       = "git.enabled"
	keyGitAuthorName    = "git.author_name"
	keyGitAuthorEmail   = "git.author_email"
)

var settingKeys = []string{
	keyAPIURL,
	keyAPIUserAgent,
	keyAPIRate,
	keyMirrorDir,
	keyMirrorCategories,
	keyLanguageCategory,
	keyStateBackend,
	keyGitEnabled,
	keyGitAuthorName,
	keyGitAuthorEmail,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		API: domain.APISettings{
			URL:               s.getString(keyAPIURL, defaults.API.URL),
			UserAgent:         s.getString(keyAPIUserAgent, defaults.API.UserAgent),
			RequestsPerSecond: s.getFloat(keyAPIRate, defaults.API.RequestsPerSecond),
		},
		Mirror: domain.MirrorSettings{
			Dir:              s.getString(keyMirrorDir, defaults.Mirror.Dir),
			Categories:       s.getStringSlice(keyMirrorCategories, defaults.Mirror.Categories),
			LanguageCategory: s.getString(keyLanguageCategory, defaults.Mirror.LanguageCategory),
		},
		State: s.getStateBackend(defaults.State),
		Git: domain.GitSettings{
			Enabled:     s.getBool(keyGitEnabled, defaults.Git.Enabled),
			AuthorName:  s.getString(keyGitAuthorName, defaults.Git.AuthorName),
			AuthorEmail: s.getString(keyGitAuthorEmail, defaults.Git.AuthorEmail),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAPIURL, settings.API.URL},
		{keyAPIUserAgent, settings.API.UserAgent},
		{keyAPIRate, settings.API.RequestsPerSecond},
		{keyMirrorDir, settings.Mirror.Dir},
		{keyMirrorCategories, settings.Mirror.Categories},
		{keyLanguageCategory, settings.Mirror.LanguageCategory},
		{keyStateBackend, settings.State.String()},
		{keyGitEnabled, settings.Git.Enabled},
		{keyGitAuthorName, settings.Git.AuthorName},
		{keyGitAuthorEmail, settings.Git.AuthorEmail},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return s.configStore.Save()
}

// Set updates a single setting from its textual form and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyAPIURL:
		settings.API.URL = value
	case keyAPIUserAgent:
		settings.API.UserAgent = value
	case keyAPIRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not a number", domain.ErrInvalidInput, key, value)
		}
		settings.API.RequestsPerSecond = rate
	case keyMirrorDir:
		settings.Mirror.Dir = value
	case keyMirrorCategories:
		settings.Mirror.Categories = splitList(value)
	case keyLanguageCategory:
		settings.Mirror.LanguageCategory = value
	case keyStateBackend:
		settings.State = domain.StateBackend(value)
	case keyGitEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not a boolean", domain.ErrInvalidInput, key, value)
		}
		settings.Git.Enabled = enabled
	case keyGitAuthorName:
		settings.Git.AuthorName = value
	case keyGitAuthorEmail:
		settings.Git.AuthorEmail = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getStateBackend(defaultVal domain.StateBackend) domain.StateBackend {
	val := s.configStore.GetString(keyStateBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StateBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
