package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the mirror",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	svc, err := requireMirror()
	if err != nil {
		return err
	}

	statuses, ts, err := svc.Status(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	for _, s := range statuses {
		if s.Initialized {
			cmd.Printf("%-28s %d task(s)\n", s.Category, s.Tasks)
		} else {
			cmd.Printf("%-28s not initialised\n", s.Category)
		}
	}

	if ts == "" {
		cmd.Println("No changes processed yet.")
	} else {
		cmd.Printf("Last change: %s\n", ts)
	}
	return nil
}
