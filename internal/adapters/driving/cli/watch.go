package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/auditgrep/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events into one rescan.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [terms...]",
	Short: "Re-run a search whenever the audit directory changes",
	Long: `Runs the search once, then watches the audit directory and re-runs it
after files are added, changed or removed. Each triggered run writes its
own report file. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	addScanFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if scannerService == nil {
		return errors.New("scanner service not configured")
	}

	opts, err := buildScanOptions(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// First run up front so a quiet directory still produces a report.
	summary, err := scannerService.Scan(ctx, opts)
	if err != nil {
		return err
	}
	printSummary(cmd, summary)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(opts.AuditDir); err != nil {
		return fmt.Errorf("watching %s: %w", opts.AuditDir, err)
	}

	cmd.Printf("Watching %s for changes...\n", opts.AuditDir)

	var timer *time.Timer
	rescan := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Change detected: %s", event)
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case rescan <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher: %v", err)

		case <-rescan:
			timer = nil
			summary, err := scannerService.Scan(ctx, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Warn("Rescan failed: %v", err)
				continue
			}
			printSummary(cmd, summary)
		}
	}
}
