package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/unity-packer/internal/config"
	"github.com/oshokin/unity-packer/internal/logger"
	"github.com/oshokin/unity-packer/internal/repository/output"
	"github.com/oshokin/unity-packer/internal/service/packager"
)

// watcher owns the fsnotify handle of one watch session.
type watcher struct {
	// opts describe what is packed and where.
	opts *packager.Options
	// cfg holds the resolved settings.
	cfg *config.Config
	// fsw receives filesystem notifications for every directory of the tree.
	fsw *fsnotify.Watcher
	// ignored holds absolute paths whose events never trigger a rebuild.
	ignored map[string]struct{}
}

// Run packs once, then repacks after every settled change until ctx is done.
func Run(ctx context.Context, opts *packager.Options) error {
	cfg, closeLogs, err := packager.Prepare(opts)
	if err != nil {
		return err
	}

	defer closeLogs()

	ctx = logger.WithName(ctx, "watch")

	w, err := newWatcher(opts, cfg)
	if err != nil {
		return err
	}

	defer func() {
		_ = w.fsw.Close()
	}()

	return w.run(ctx)
}

// newWatcher creates the fsnotify handle and the set of ignored paths.
func newWatcher(opts *packager.Options, cfg *config.Config) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	// The package and its lock may live inside the watched tree.
	pkg, err := filepath.Abs(output.PackagePath(opts.PackageName))
	if err != nil {
		_ = fsw.Close()

		return nil, fmt.Errorf("resolve package path: %w", err)
	}

	return &watcher{
		opts: opts,
		cfg:  cfg,
		fsw:  fsw,
		ignored: map[string]struct{}{
			pkg:           {},
			pkg + ".lock": {},
		},
	}, nil
}

// run is the watch loop.
func (w *watcher) run(ctx context.Context) error {
	if err := w.addTree(w.opts.AnalysedPath); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Watching for changes", "path", w.opts.AnalysedPath, "debounce", w.cfg.WatchDebounce)

	w.repack(ctx)

	debounce := time.NewTimer(w.cfg.WatchDebounce)
	debounce.Stop()

	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Watch stopped")

			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			logger.DebugKV(ctx, "Change detected", "path", event.Name, "op", event.Op.String())

			// New directories are not watched by fsnotify until added.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err = w.addTree(event.Name); err != nil {
						logger.WarnKV(ctx, "Cannot watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			debounce.Reset(w.cfg.WatchDebounce)

		case <-debounce.C:
			w.repack(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			logger.WarnKV(ctx, "File watcher error", "error", err)
		}
	}
}

// relevant reports whether event should trigger a rebuild.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return true
	}

	_, skip := w.ignored[abs]

	return !skip
}

// repack runs a complete pack and logs its outcome.
func (w *watcher) repack(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if _, err := packager.Pack(ctx, w.opts, w.cfg); err != nil {
		logger.ErrorKV(ctx, "Rebuild failed, waiting for the next change", "error", err)
	}
}

// addTree watches root and every directory below it.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The directory may be gone already; the next event will tell.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return err
		}

		if !d.IsDir() {
			return nil
		}

		if err = w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		return nil
	})
}
