package composer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// configDebounce collapses the burst of events one save produces.
const configDebounce = 50 * time.Millisecond

// WatchConfig reloads the config file at path whenever it is written or
// replaced and passes the result to fn, until ctx is done. The directory is
// watched, so editors that save by renaming a temp file are seen too.
//
// fn runs on the watching goroutine; hosts post the result to the
// composer's goroutine, for example through Options.Schedule.
func WatchConfig(ctx context.Context, path string, fn func(FileConfig, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	timer := time.NewTimer(configDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(configDebounce)

		case <-timer.C:
			fn(LoadConfig(abs))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(FileConfig{}, fmt.Errorf("watching %s: %w", path, err))
		}
	}
}
