package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var languageCmd = &cobra.Command{
	Use:   "language <name>...",
	Short: "Show how language names map to directories and extensions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLanguage,
}

func init() {
	rootCmd.AddCommand(languageCmd)
}

func runLanguage(cmd *cobra.Command, args []string) error {
	svc, err := requireMirror()
	if err != nil {
		return err
	}

	for _, name := range args {
		lang, err := svc.ResolveLanguage(commandContext(cmd), name)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", name, err)
		}
		cmd.Printf("%s: %s/ .%s\n", name, lang.Slug, lang.Extension)
	}
	return nil
}
