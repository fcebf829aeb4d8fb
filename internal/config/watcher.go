package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Wikid82/hermes/internal/logger"
)

// Watch observes the configured services file and atomically replaces the
// snapshot when it changes. A parse failure keeps the previous snapshot.
// It returns immediately when no services file is configured.
func Watch(ctx context.Context, snap *Snapshot) error {
	path := snap.Get().ServicesFile
	if path == "" {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve services file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors and config management tools typically
	// replace the file via rename, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch services directory: %w", err)
	}

	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				reload(snap, absPath)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log().WithError(err).Warn("services file watcher error")
			}
		}
	}()

	return nil
}

func reload(snap *Snapshot, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log().WithError(err).Warn("services file changed but could not be read; keeping previous config")
		return
	}

	services, err := ParseServices(string(data))
	if err != nil {
		logger.Log().WithError(err).Warn("services file changed but did not parse; keeping previous config")
		return
	}

	snap.Replace(snap.Get().WithServices(services))
	logger.WithFields(map[string]interface{}{
		"path":     path,
		"services": len(services),
	}).Info("reloaded service declarations")
}
