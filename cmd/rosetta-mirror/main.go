// Command rosetta-mirror mirrors Rosetta Code task solutions into a git
// repository.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	fileconfig "github.com/custodia-labs/rosetta-mirror/internal/adapters/driven/config/file"
	filestate "github.com/custodia-labs/rosetta-mirror/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/rosetta-mirror/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rosetta-mirror/internal/adapters/driven/vcs/git"
	"github.com/custodia-labs/rosetta-mirror/internal/adapters/driving/cli"
	"github.com/custodia-labs/rosetta-mirror/internal/connectors/mediawiki"
	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
	"github.com/custodia-labs/rosetta-mirror/internal/core/services"
	"github.com/custodia-labs/rosetta-mirror/internal/extractor"
	"github.com/custodia-labs/rosetta-mirror/internal/languages"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

// Set by the linker.
var version = "dev"

// stateDir holds tallies and the last timestamp inside the mirror, outside
// every category directory.
const stateDir = ".mirror"

func main() {
	cli.SetVersion(version)
	cli.Configure(openSettings, openMirror)

	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func openSettings(configPath string) (driving.SettingsService, error) {
	store, err := fileconfig.NewConfigStore(configPath)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store), nil
}

func openMirror(settings *domain.Settings) (driving.MirrorService, func() error, error) {
	table, err := languages.LoadTable()
	if err != nil {
		return nil, nil, fmt.Errorf("load language table: %w", err)
	}

	state, err := openState(settings)
	if err != nil {
		return nil, nil, err
	}

	var vcs driven.VersionControl
	if settings.Git.Enabled {
		vcs = git.NewRepository(settings.Mirror.Dir, settings.Git.AuthorName, settings.Git.AuthorEmail)
	}

	client := mediawiki.NewClient(mediawiki.Config{
		URL:               settings.API.URL,
		UserAgent:         settings.API.UserAgent,
		RequestsPerSecond: settings.API.RequestsPerSecond,
	})

	svc := services.NewMirrorService(client, table, extractor.New(), state, vcs, services.MirrorConfig{
		Root:             settings.Mirror.Dir,
		Categories:       settings.Mirror.Categories,
		LanguageCategory: settings.Mirror.LanguageCategory,
	})
	return svc, state.Close, nil
}

func openState(settings *domain.Settings) (driven.StateStore, error) {
	dir := filepath.Join(settings.Mirror.Dir, stateDir)
	switch settings.State {
	case domain.StateBackendSQLite:
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("open state database: %w", err)
		}
		return store, nil
	default:
		return filestate.NewStateStore(dir), nil
	}
}
