package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
	"github.com/custodia-labs/rosetta-mirror/internal/core/services"
)

var (
	syncWatch    bool
	syncInterval time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise the mirror with the wiki",
	Long: `Replays recent wiki edits onto every mirrored category, committing
each edit that changes a file. Categories that have never been mirrored
are then crawled in full and committed as a baseline.

With --watch the sync repeats every --interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "keep running, syncing once per interval")
	syncCmd.Flags().DurationVar(&syncInterval, "interval", services.DefaultWatchInterval, "pause between runs with --watch")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	svc, err := requireMirror()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	if syncWatch {
		return watchSync(ctx, cmd, svc)
	}

	cmd.Println("Synchronising mirror...")

	report, err := svc.Run(ctx)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Println("Mirror synchronised successfully.")
	return nil
}

// watchSync repeats the sync until the context is cancelled.
func watchSync(ctx context.Context, cmd *cobra.Command, svc driving.MirrorService) error {
	w := services.NewWatcher(svc, syncInterval, func(report *domain.SyncReport, err error) {
		if report != nil {
			printReport(cmd, report)
		}
		if err != nil {
			cmd.PrintErrf("sync failed: %v\n", err)
		}
	})

	cmd.Printf("Synchronising mirror every %s (Ctrl+C to stop)...\n", w.Interval())
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cmd.Println("Stopped watching.")
	return nil
}

func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	cmd.Printf("Run %s: %d recent change(s)\n", report.ID, report.Changes)
	for _, c := range report.Categories {
		if c.Category == "" {
			continue
		}
		if c.Initialized {
			cmd.Printf("  %s: initialised, %d page(s) extracted, %d commit(s)\n",
				c.Category, c.Extracted, c.Commits)
		} else {
			cmd.Printf("  %s: %d edit(s) applied, %d commit(s)\n",
				c.Category, c.Applied, c.Commits)
		}
		for _, s := range c.Skipped {
			cmd.Printf("    skipped %q (page %d): %s\n", s.Title, s.PageID, s.Reason)
		}
	}
	if report.Timestamp != "" {
		cmd.Printf("Last change: %s\n", report.Timestamp)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
