package launcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SignalWatcher monitors a control directory for a kill file. Writing or
// creating <dir>/kill stops the downstream executor; there is no softer
// in-band cancellation.
type SignalWatcher struct {
	dir     string
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	killed chan struct{}
	closed bool
	done   chan struct{}
}

// WatchSignals starts watching the given control directory, creating it if
// needed.
func WatchSignals(dir string) (*SignalWatcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &SignalWatcher{
		dir:     dir,
		watcher: watcher,
		killed:  make(chan struct{}),
		done:    make(chan struct{}),
	}

	// A kill file created before the watcher started still counts.
	if w.ShouldStop() {
		w.signalKill()
	}

	go w.watch()
	return w, nil
}

// Killed returns a channel that closes when the kill file appears.
func (w *SignalWatcher) Killed() <-chan struct{} {
	return w.killed
}

// ShouldStop checks the kill file directly, covering events the watcher
// may have missed.
func (w *SignalWatcher) ShouldStop() bool {
	_, err := os.Stat(filepath.Join(w.dir, "kill"))
	return err == nil
}

// Close stops the watcher.
func (w *SignalWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	return w.watcher.Close()
}

func (w *SignalWatcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == "kill" &&
				(event.Op&fsnotify.Create != 0 || event.Op&fsnotify.Write != 0) {
				w.signalKill()
			}
		case <-w.watcher.Errors:
			// Keep watching; ShouldStop remains as the polling fallback.
		}
	}
}

func (w *SignalWatcher) signalKill() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.killed:
	default:
		close(w.killed)
	}
}
