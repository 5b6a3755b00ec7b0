package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch calls run once and then again every time any of the paths changes,
// waiting for delay of quiet time first. Directories in paths are watched as a
// whole, for files containing directory is watched since editors often replace
// files instead of writing them. Returns when ctx is done.
func watch(ctx context.Context, paths []string, delay time.Duration, run func(context.Context) error, log *zap.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to start watcher: %w", err)
	}
	defer w.Close()

	files, dirs := make(map[string]bool), make(map[string]bool)
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
			dirs[abs] = true
			if err := w.Add(abs); err != nil {
				return fmt.Errorf("unable to watch %s: %w", abs, err)
			}
			continue
		}
		files[abs] = true
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("unable to watch %s: %w", abs, err)
		}
	}

	relevant := func(ev fsnotify.Event) bool {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			return false
		}
		if files[ev.Name] {
			return true
		}
		// our own output may land next to exports
		return dirs[filepath.Dir(ev.Name)] && (hasStoryExt(ev.Name) || strings.EqualFold(filepath.Ext(ev.Name), ".zip"))
	}

	rebuild := func() {
		if err := run(ctx); err != nil && ctx.Err() == nil {
			log.Error("Unable to rebuild story", zap.Error(err))
		}
	}

	rebuild()
	log.Info("Watching for changes", zap.Strings("paths", paths), zap.Duration("debounce", delay))

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Watch stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if relevant(ev) {
				log.Debug("Change detected", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
				timer.Reset(delay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", zap.Error(err))
		case <-timer.C:
			rebuild()
		}
	}
}
