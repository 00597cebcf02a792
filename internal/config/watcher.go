package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a config file when another process rewrites it.
type Watcher struct {
	path     string
	callback func(*Config)
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	mu       sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
}

// Watch starts watching path and calls callback with each successfully
// reloaded config. The parent directory is watched so editors that replace
// the file are still seen.
func Watch(path string, callback func(*Config), debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching config dir: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	cw := &Watcher{
		path:     filepath.Clean(path),
		callback: callback,
		debounce: debounce,
		watcher:  w,
		logger:   slog.Default().With("component", "config"),
		stopCh:   make(chan struct{}),
	}

	go cw.run()
	return cw, nil
}

func (cw *Watcher) run() {
	var debounce *time.Timer
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(cw.debounce, cw.reload)
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("watcher error", "error", err)
		case <-cw.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

func (cw *Watcher) reload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	select {
	case <-cw.stopCh:
		return
	default:
	}

	cfg, err := LoadFrom(cw.path)
	if err != nil {
		cw.logger.Warn("reload failed", "path", cw.path, "error", err)
		return
	}

	cw.logger.Info("configuration reloaded", "path", cw.path)
	cw.callback(cfg)
}

// Stop stops the watcher. It is safe to call more than once.
func (cw *Watcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		close(cw.stopCh)
		err = cw.watcher.Close()
	})
	return err
}
