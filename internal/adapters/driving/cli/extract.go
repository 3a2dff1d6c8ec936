package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
)

var (
	extractTitle    string
	extractOut      string
	extractPage     uint64
	extractCategory string
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract code blocks from a page",
	Long: `Writes the solutions of a single task page without touching the
mirror's state or history.

With a file argument the wikitext is read locally and languages resolve
from the built-in table. With --page the latest revision is fetched from
the wiki and written into --category.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractTitle, "title", "", "task title (default is the file name)")
	extractCmd.Flags().StringVar(&extractOut, "out", ".", "output directory")
	extractCmd.Flags().Uint64Var(&extractPage, "page", 0, "wiki page id to fetch")
	extractCmd.Flags().StringVar(&extractCategory, "category", "Programming_Tasks", "category directory for --page")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (extractPage == 0) {
		return errors.New("provide either a file or --page")
	}

	svc, err := requireMirror()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	var paths []string
	if extractPage != 0 {
		paths, err = svc.ExtractPage(ctx, extractCategory, extractPage)
	} else {
		paths, err = extractFile(cmd, svc, args[0])
	}
	for _, p := range paths {
		cmd.Println(p)
	}
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	cmd.Printf("Wrote %d file(s).\n", len(paths))
	return nil
}

func extractFile(cmd *cobra.Command, svc driving.MirrorService, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	title := extractTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return svc.ExtractText(commandContext(cmd), extractOut, title, string(data))
}
