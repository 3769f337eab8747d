package fieldvault

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs the builder whenever a configuration file changes.
//
// A rebuild can itself touch watched files (checksum write-backs, column
// repairs); the follow-up rebuild then finds nothing to do and the loop
// settles because the pass is idempotent.
type Watcher struct {
	vault    *Vault
	builder  *Builder
	logger   *slog.Logger
	debounce time.Duration
	active   bool
}

// NewWatcher creates a watcher over the vault's configuration files.
func NewWatcher(v *Vault, b *Builder, logger *slog.Logger) *Watcher {
	return &Watcher{
		vault:    v,
		builder:  b,
		logger:   logger,
		debounce: 250 * time.Millisecond,
	}
}

// triggerPatterns lists vault-relative globs whose changes warrant a rebuild.
func (w *Watcher) triggerPatterns() []string {
	return []string{
		filepath.ToSlash(w.builder.nodeFile),
		"**/*" + summarySuffix,
		"**/" + ProjectFileName,
		"**/" + FieldLogFileName,
	}
}

// shouldTrigger reports whether a vault-relative path matches a trigger pattern.
func (w *Watcher) shouldTrigger(rel string) bool {
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, ".git/") || strings.HasPrefix(filepath.Base(rel), TempFilePrefix) {
		return false
	}
	for _, pattern := range w.triggerPatterns() {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Run watches the vault until the context is cancelled. An initial build
// runs before watching so the tree starts in sync.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.builder.Build(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.vault.Path); err != nil {
		return err
	}

	w.active = true
	defer func() { w.active = false }()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// New project/site folders need to be watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if filepath.Base(event.Name) != ".git" {
						_ = watcher.Add(event.Name)
					}
					continue
				}
			}

			rel, err := filepath.Rel(w.vault.Path, event.Name)
			if err != nil {
				continue
			}
			if w.shouldTrigger(rel) {
				if w.logger != nil {
					w.logger.Debug("change detected", "path", rel)
				}
				timer.Reset(w.debounce)
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.logger != nil {
				w.logger.Error("fsnotify error", "error", wErr)
			}

		case <-timer.C:
			w.rebuild(ctx)
		}
	}
}

// rebuild runs a supervised build pass. Builder serializes overlapping
// passes internally.
func (w *Watcher) rebuild(ctx context.Context) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		report, err := w.builder.Build(ctx)
		if err != nil {
			return err
		}
		if w.logger != nil && report.Changed() {
			w.logger.Info("rebuilt", "summary", report.Summary())
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if w.logger != nil {
			w.logger.Error("rebuild failed", "error", err)
		}
	}))
}

// addRecursive registers root and every subdirectory, skipping .git.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
