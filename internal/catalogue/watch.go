package catalogue

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher holds the live *Catalogue for a long-running host process and
// swaps it for a freshly-loaded one whenever the backing file changes
// (SPEC_FULL.md §4.8). Reads never block on reloads: Current() is a plain
// atomic pointer load, and a catalogue already handed to an in-flight
// parse stays valid for that parse's whole lifetime since Catalogue is
// immutable once built.
type Watcher struct {
	path    string
	current atomic.Pointer[Catalogue]
	fsw     *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
}

// Watch loads path once synchronously, then starts watching it for writes
// in the background. The returned Watcher must be closed with Close when
// the host is done with it, to release the fsnotify file descriptor.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	initial, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{path: path, fsw: fsw, logger: logger, done: make(chan struct{})}
	w.current.Store(initial)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reloaded, err := LoadFile(w.path)
			if err != nil {
				w.logger.Warn("catalogue reload failed, keeping previous catalogue",
					"path", w.path, "error", err)
				continue
			}
			w.current.Store(reloaded)
			w.logger.Debug("catalogue reloaded", "path", w.path)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalogue watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// Current returns the most recently loaded Catalogue.
func (w *Watcher) Current() *Catalogue {
	return w.current.Load()
}

// Close stops watching and releases the underlying file descriptor.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
