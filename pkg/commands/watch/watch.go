// Package watch implements watch mode: re-run a full sync whenever
// the template tree changes. Every run is a complete build and link;
// nothing is incremental.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotweave/pkg/commands/sync"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups rapid editor write bursts into one sync
const DefaultDebounce = 500 * time.Millisecond

// Options holds options for the watch command
type Options struct {
	Config *config.Config
	FS     filesystem.FS

	// Debounce is the quiet period required before a sync runs,
	// defaulting to DefaultDebounce
	Debounce time.Duration

	// OnSyncError is called with each failed sync's aggregated error;
	// watching continues regardless. May be nil.
	OnSyncError func(error)
}

// Watch runs an initial sync, then watches the template tree and
// re-syncs on every change until ctx is cancelled. Sync failures are
// reported through OnSyncError and do not stop the watch.
func Watch(ctx context.Context, opts Options) error {
	logger := logging.GetLogger("commands.watch")

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, opts.Config.TemplateDir); err != nil {
		return err
	}

	runSync := func() {
		if err := sync.Sync(sync.Options{Config: opts.Config, FS: opts.FS}); err != nil {
			logger.Warn().Msg("sync failed")
			if opts.OnSyncError != nil {
				opts.OnSyncError(err)
			}
			return
		}
		logger.Info().Msg("sync complete")
	}

	runSync()
	logger.Info().Str("path", opts.Config.TemplateDir).Msg("watching template tree")

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			// new directories must be watched as they appear
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := opts.FS.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := addRecursive(watcher, event.Name); addErr != nil {
						logger.Warn().Str("path", event.Name).Msg("failed to watch new directory")
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(watchErr).Msg("watcher error")

		case <-pending:
			runSync()
		}
	}
}

// addRecursive watches root and every directory below it
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
