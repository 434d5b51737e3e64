// Package watch signals when the directory currently on display
// changes on disk, so the shell can refresh its listing.
package watch

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher follows a single directory and coalesces filesystem events
// into invalidation signals.
type Watcher struct {
	fsWatcher *fsnotify.Watcher

	// Invalidation signals; coalesced, never blocking the event loop.
	invalidated chan struct{}

	stopChan chan struct{}

	mutex   sync.Mutex
	dir     string
	running bool
}

func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher:   fsWatcher,
		invalidated: make(chan struct{}, 1),
		stopChan:    make(chan struct{}),
	}, nil
}

// SetDirectory switches the watched directory, dropping the previous
// one. Watching a directory that disappears later is not an error; the
// next SetDirectory re-arms it.
func (w *Watcher) SetDirectory(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			logrus.WithError(err).WithField("dir", w.dir).Debug("failed to unwatch directory")
		}
	}
	w.dir = ""
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Invalidated delivers one signal per burst of changes in the watched
// directory.
func (w *Watcher) Invalidated() <-chan struct{} {
	return w.invalidated
}

// Start launches the event loop. It is a no-op when already running.
func (w *Watcher) Start() {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			select {
			case w.invalidated <- struct{}{}:
			default: // a signal is already pending
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("watcher error")
		}
	}
}

// Stop terminates the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		_ = w.fsWatcher.Close()
		return
	}
	w.running = false
	close(w.stopChan)
	_ = w.fsWatcher.Close()
}
