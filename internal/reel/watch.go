package reel

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/llehouerou/reelpreview/internal/config"
)

// Watch reloads the scenario at path whenever it changes and reports the
// result to onChange. It watches the parent directory so editors that save
// by rename are seen too. Blocks until ctx is done.
func Watch(ctx context.Context, path string, defaults config.DurationsConfig, onChange func(*Reel, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			onChange(Load(abs, defaults))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onChange(nil, err)
		}
	}
}
