// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// MirrorService runs the synchronisation: it replays the wiki's recent
// changes onto every initialised category, then crawls the categories
// that have never been mirrored. SettingsService reads and writes the
// application configuration.
package services
