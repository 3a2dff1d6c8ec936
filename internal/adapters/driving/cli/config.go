package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the wiki endpoint, mirrored categories, state backend
and git settings.

Settings are stored in a TOML file. Use subcommands to change a single
key or to step through every key interactively.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key.

Lists such as mirror.categories are comma separated. Run 'rosetta-mirror
config show' for the available keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Step through every setting, keeping the current value on an empty answer.`,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	values := settingValues(settings)
	section := ""
	for _, key := range svc.Keys() {
		name, field, _ := strings.Cut(key, ".")
		if name != section {
			if section != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", name)
			section = name
		}
		cmd.Printf("  %s = %s\n", field, values[key])
	}
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'rosetta-mirror config wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	if err := svc.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("the wizard needs an interactive terminal; use 'config set' instead")
	}
	return configWizard(cmd, bufio.NewReader(os.Stdin))
}

// configWizard prompts for every key, keeping the current value on an
// empty answer.
func configWizard(cmd *cobra.Command, reader *bufio.Reader) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	cmd.Println("Rosetta Mirror Settings Wizard")
	cmd.Println("==============================")
	cmd.Println()

	for _, key := range svc.Keys() {
		settings, err := svc.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}

		cmd.Printf("%s [%s]: ", key, settingValues(settings)[key])
		input, err := readLine(reader)
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if err := svc.Set(key, input); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	return nil
}

// settingValues renders settings in the textual form accepted by Set.
func settingValues(s *domain.Settings) map[string]string {
	return map[string]string{
		"api.url":                  s.API.URL,
		"api.user_agent":           s.API.UserAgent,
		"api.requests_per_second":  strconv.FormatFloat(s.API.RequestsPerSecond, 'g', -1, 64),
		"mirror.dir":               s.Mirror.Dir,
		"mirror.categories":        strings.Join(s.Mirror.Categories, ","),
		"mirror.language_category": s.Mirror.LanguageCategory,
		"state.backend":            s.State.String(),
		"git.enabled":              strconv.FormatBool(s.Git.Enabled),
		"git.author_name":          s.Git.AuthorName,
		"git.author_email":         s.Git.AuthorEmail,
	}
}

// readLine reads one answer. End of input with no answer counts as empty.
func readLine(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
