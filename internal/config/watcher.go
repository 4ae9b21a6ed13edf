package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// Handler is called with the freshly loaded configuration when the
// watched file changes.
type Handler func(cfg Config)

// Watcher polls the configuration file and reloads it on modification.
// Polling keeps the dependency surface flat and is cheap at the half
// second granularity a config file needs.
type Watcher struct {
	path     string
	interval time.Duration
	handler  Handler

	mu      sync.Mutex
	lastMod time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher for path. interval <= 0 selects the
// default 500ms poll.
func NewWatcher(path string, interval time.Duration, handler Handler) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{path: path, interval: interval, handler: handler}
}

// Start begins polling in a background goroutine.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	if info, err := os.Stat(w.path); err == nil {
		w.lastMod = info.ModTime()
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.poll(ctx)
}

// Stop halts polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (w *Watcher) poll(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	changed := info.ModTime().After(w.lastMod)
	if changed {
		w.lastMod = info.ModTime()
	}
	w.mu.Unlock()

	if !changed || w.handler == nil {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		// A half-written or broken file keeps the previous config.
		return
	}
	w.handler(cfg)
}
