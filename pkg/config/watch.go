package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/user/teapotcast/pkg/ports"
)

// Watch reloads path whenever it is written and sends every configuration
// that loads and validates. Invalid files are logged and skipped. The
// returned channel is closed when ctx is done.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still seen.
func Watch(ctx context.Context, path string, logger ports.Logger) (<-chan Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	logger = logger.WithComponent("config")
	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFromFile(abs)
				if err == nil {
					err = cfg.Validate()
				}
				if err != nil {
					logger.Warn("Ignoring invalid configuration: %s", err)
					continue
				}
				logger.Info("Configuration reloaded from %s", path)
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Configuration watch error: %s", err)
			}
		}
	}()

	logger.Info("Watching %s for changes", path)
	return out, nil
}

// FrameIntervals forwards the frame interval of each configuration, skipping
// repeats. The returned channel is closed when in is or ctx is done.
func FrameIntervals(ctx context.Context, in <-chan Config) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		last := 0
		for {
			var cfg Config
			select {
			case <-ctx.Done():
				return
			case c, ok := <-in:
				if !ok {
					return
				}
				cfg = c
			}
			if cfg.FrameInterval == last {
				continue
			}
			last = cfg.FrameInterval
			select {
			case out <- last:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
