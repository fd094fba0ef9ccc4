package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config file and reloads the global configuration when it
// changes. It blocks until ctx is cancelled. onReload is called after every
// successful reload and may be nil.
//
// The parent directory is watched rather than the file itself so that editors
// and config-management tools that replace the file atomically still trigger a
// reload.
func Watch(ctx context.Context, onReload func(*Config)) error {
	cfg := Get()
	path := cfg.ConfigFilePath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := Reload(); err != nil {
				// Keep serving with the previous configuration.
				continue
			}
			if onReload != nil {
				onReload(Get())
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
