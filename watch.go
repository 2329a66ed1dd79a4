package sitegen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDebounce is how long Watch waits after the last change before rebuilding.
var WatchDebounce = 300 * time.Millisecond

// Watch regenerates every page whenever a table file in Config.ContentDir
// changes, until ctx is cancelled. Rebuild failures are logged, not returned.
func (a *App) Watch(ctx context.Context) error {
	if a.Config.ContentDir == "" {
		return errors.New("sitegen: watch needs a content directory")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("sitegen: create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(a.Config.ContentDir); err != nil {
		return fmt.Errorf("sitegen: watch %s: %w", a.Config.ContentDir, err)
	}
	a.Logger.Info("watching content", zap.String("dir", a.Config.ContentDir))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isTableFile(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			a.Logger.Debug("content changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				timer.Reset(WatchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warn("watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			a.rebuild(ctx)
		}
	}
}

func (a *App) rebuild(ctx context.Context) {
	if err := a.Reload(); err != nil {
		a.Logger.Error("reload failed, keeping previous tables", zap.Error(err))
		return
	}
	report, err := a.Generate(ctx)
	if err != nil {
		a.Logger.Error("rebuild failed", zap.Int("written", report.Written()), zap.Int("failed", report.Failed()), zap.Error(err))
		return
	}
	a.Logger.Info("site rebuilt", zap.Int("written", report.Written()))
}

func isTableFile(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
