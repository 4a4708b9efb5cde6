package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"go-surface/debug"
)

// debounceDelay collapses the burst of events editors emit on save.
const debounceDelay = 100 * time.Millisecond

// Watch reloads path whenever it is written and hands the new config to fn.
// fn runs on a timer goroutine. A file that fails to parse is logged and
// skipped; the previous config stays in effect. Watch blocks until ctx is
// done.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file rather than write it
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				cfg, err := LoadFile(path)
				if err != nil {
					debug.Warn("config", "reload: %v", err)
					return
				}
				debug.Log("config", "reloaded %s", path)
				fn(cfg)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.Warn("config", "watch: %v", err)
		}
	}
}
