// Package watch keeps a simulation tree under observation and generates the
// MM-GBSA input set for analysis directories as they appear. Filesystem events
// drive the fast path; a periodic rescan catches anything the watcher missed
// (deep mkdir -p bursts, network filesystems with unreliable events).
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/gbsaprep/internal/discover"
	"git.home.luguber.info/inful/gbsaprep/internal/gbsa"
	"git.home.luguber.info/inful/gbsaprep/internal/logfields"
)

// Options tune watcher behavior. Zero values get sensible defaults.
type Options struct {
	RescanInterval time.Duration // periodic full rescan, default 5m
	Debounce       time.Duration // quiet period after an event burst, default 2s
}

// Watcher monitors a root directory and generates inputs for new analysis dirs.
type Watcher struct {
	root     string
	gen      *gbsa.Generator
	watcher  *fsnotify.Watcher
	rescan   time.Duration
	debounce time.Duration
	seen     map[string]struct{}
}

// New creates a Watcher over root using gen for file generation.
func New(root string, gen *gbsa.Generator, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}

	if opts.RescanInterval <= 0 {
		opts.RescanInterval = 5 * time.Minute
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}

	return &Watcher{
		root:     absRoot,
		gen:      gen,
		watcher:  fsw,
		rescan:   opts.RescanInterval,
		debounce: opts.Debounce,
		seen:     make(map[string]struct{}),
	}, nil
}

// Run blocks until ctx is canceled, generating inputs for analysis directories
// as they appear. An initial pass covers directories that already exist.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watchTree(w.root); err != nil {
		return err
	}
	if err := w.sweep(); err != nil {
		return err
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create rescan scheduler: %w", err)
	}
	trigger := make(chan struct{}, 1)
	_, err = scheduler.NewJob(
		gocron.DurationJob(w.rescan),
		gocron.NewTask(func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		}),
		gocron.WithName("rescan"),
	)
	if err != nil {
		return fmt.Errorf("schedule rescan: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown failed", logfields.Error(err))
		}
	}()

	slog.Info("Watching for new analysis directories",
		logfields.Root(w.root),
		slog.Duration("rescan", w.rescan))

	// Debounce timer is armed by events and drained on fire.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watcher stopping")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			// New directories are added to the watch immediately so nested
			// creates keep arriving; generation waits for the quiet period.
			if err := w.watchTree(event.Name); err != nil {
				slog.Debug("Not watching new path", logfields.Path(event.Name), logfields.Error(err))
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))

		case <-timer.C:
			if err := w.sweep(); err != nil {
				return err
			}

		case <-trigger:
			if err := w.watchTree(w.root); err != nil {
				slog.Warn("Rescan watch refresh failed", logfields.Error(err))
			}
			if err := w.sweep(); err != nil {
				return err
			}
		}
	}
}

// watchTree adds path and every directory below it to the fsnotify watch.
// Non-directories and vanished paths are ignored.
func (w *Watcher) watchTree(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // vanished or unreadable, skip
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			slog.Debug("Watch add failed", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

// sweep generates inputs for every analysis directory not handled before.
// Generation is idempotent, so racing with a concurrent manual run is safe.
func (w *Watcher) sweep() error {
	analyses, err := discover.Scan(w.root)
	if err != nil {
		return err
	}
	for _, a := range analyses {
		if _, done := w.seen[a.Dir]; done {
			continue
		}
		slog.Info("New analysis directory", logfields.Mutation(a.Mutation), logfields.Path(a.Dir))
		if _, err := w.gen.GenerateTarget(a); err != nil {
			return err
		}
		w.seen[a.Dir] = struct{}{}
	}
	return nil
}
