// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Reload is one reload attempt after a config file changed.
type Reload struct {
	Path   string
	Config *Config
	Err    error
}

// Watcher reloads the configuration when its file changes.
type Watcher struct {
	path     string
	explicit bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	reloads  chan Reload

	mu      sync.Mutex
	pending time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewWatcher creates a watcher. An empty path watches the default config
// files and reloads with Load; otherwise only path is watched and
// reloaded with LoadFromPath.
func NewWatcher(path string) (*Watcher, error) {
	explicit := path != ""
	dir := filepath.Dir(path)
	if !explicit {
		d, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
		if err := EnsureConfigDir(); err != nil {
			return nil, err
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so editors that replace the file by rename
	// are still seen.
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		explicit: explicit,
		watcher:  fw,
		debounce: DefaultDebounce,
		reloads:  make(chan Reload, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	go w.processEvents()
	go w.processPending()
	return w, nil
}

// Reloads delivers reload results. The channel is closed by Close.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
	})
	return err
}

// relevant reports whether name is a file this watcher reloads.
func (w *Watcher) relevant(name string) bool {
	if w.explicit {
		return filepath.Clean(name) == filepath.Clean(w.path)
	}
	base := filepath.Base(name)
	return base == "config.toml" || base == "config.json"
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG_WATCH_ERROR | error=%v", err)
		}
	}
}

// processPending reloads once changes have settled.
func (w *Watcher) processPending() {
	defer close(w.reloads)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case now := <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && now.Sub(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if due {
				w.send(w.reload())
			}
		}
	}
}

func (w *Watcher) reload() Reload {
	if w.explicit {
		if _, err := os.Stat(w.path); err != nil {
			return Reload{Path: w.path, Err: err}
		}
		cfg, err := LoadFromPath(w.path)
		return Reload{Path: w.path, Config: cfg, Err: err}
	}

	path, _ := ActivePath()
	cfg, err := Load()
	if err != nil {
		// Keep the running configuration when the file is broken.
		cfg = nil
	}
	return Reload{Path: path, Config: cfg, Err: err}
}

// send delivers r, replacing an undelivered older result.
func (w *Watcher) send(r Reload) {
	for {
		select {
		case w.reloads <- r:
			log.Printf("CONFIG_RELOADED | path=%s ok=%t", r.Path, r.Err == nil)
			return
		case <-w.ctx.Done():
			return
		default:
			select {
			case <-w.reloads:
			default:
			}
		}
	}
}
