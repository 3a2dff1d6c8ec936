package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

// SettingsFactory opens the settings service backed by a config file.
// An empty path selects the default location.
type SettingsFactory func(configPath string) (driving.SettingsService, error)

// MirrorFactory builds the mirror service for the effective settings.
// The returned function releases the resources the service holds.
type MirrorFactory func(settings *domain.Settings) (driving.MirrorService, func() error, error)

var version = "dev"

// Persistent flags.
var (
	configPath string
	mirrorDir  string
	verbose    bool
)

// Services, set directly in tests or built lazily from the factories.
var (
	settingsService driving.SettingsService
	mirrorService   driving.MirrorService

	newSettingsService SettingsFactory
	newMirrorService   MirrorFactory
	closeMirror        func() error
)

var rootCmd = &cobra.Command{
	Use:   "rosetta-mirror",
	Short: "Mirror Rosetta Code tasks into a git repository",
	Long: `rosetta-mirror keeps a local tree of Rosetta Code solutions in step
with the wiki. Every task becomes a directory with one file per solution,
and every replayed wiki edit becomes a git commit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return releaseMirror()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/rosetta-mirror/config.toml)")
	rootCmd.PersistentFlags().StringVar(&mirrorDir, "mirror", "", "mirror directory (overrides mirror.dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
}

// Configure installs the constructors used to build services on demand.
func Configure(settings SettingsFactory, mirror MirrorFactory) {
	newSettingsService = settings
	newMirrorService = mirror
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases the mirror service, also
// when the command failed.
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := releaseMirror(); err == nil {
		err = closeErr
	}
	return err
}

func requireSettings() (driving.SettingsService, error) {
	if settingsService != nil {
		return settingsService, nil
	}
	if newSettingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	svc, err := newSettingsService(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService = svc
	return svc, nil
}

// effectiveSettings returns the stored settings with flag overrides applied.
func effectiveSettings() (*domain.Settings, error) {
	svc, err := requireSettings()
	if err != nil {
		return nil, err
	}
	settings, err := svc.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if mirrorDir != "" {
		settings.Mirror.Dir = mirrorDir
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func requireMirror() (driving.MirrorService, error) {
	if mirrorService != nil {
		return mirrorService, nil
	}
	if newMirrorService == nil {
		return nil, errors.New("mirror service not configured")
	}
	settings, err := effectiveSettings()
	if err != nil {
		return nil, err
	}
	svc, closeFn, err := newMirrorService(settings)
	if err != nil {
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	mirrorService = svc
	closeMirror = closeFn
	return svc, nil
}

// releaseMirror closes a mirror service built by requireMirror.
func releaseMirror() error {
	if closeMirror == nil {
		return nil
	}
	closeFn := closeMirror
	closeMirror = nil
	mirrorService = nil
	return closeFn()
}
