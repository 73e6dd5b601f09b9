package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"autoopen/internal/errors"
	"autoopen/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultPairWindow is how long a Rename waits for the Create that completes
// a move inside the watched directory. Both halves come from the same
// inotify read, so the gap is normally microseconds.
const DefaultPairWindow = 10 * time.Millisecond

// pendingRename is the source half of a move that has not been paired yet.
// info is nil when the file was never seen in the directory.
type pendingRename struct {
	path string
	info os.FileInfo
	at   time.Time
}

// Watcher monitors a single directory, non-recursively, and translates raw
// fsnotify operations into FileEvents.
type Watcher struct {
	// Directory being watched
	directory string

	// Channel delivering translated events
	events chan FileEvent

	// Channel to signal stop
	stopChan chan struct{}

	// Closed when the event loop has returned
	done chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	pairWindow time.Duration
	now        func() time.Time

	// Last known identity of each entry, owned by the event loop
	known map[string]os.FileInfo

	// Lock for running state
	mutex   sync.RWMutex
	running bool
	closed  bool
}

// WatcherOption customizes a Watcher
type WatcherOption func(*Watcher)

// WithPairWindow sets how long a Rename may wait for its Create
func WithPairWindow(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.pairWindow = d
	}
}

// NewWatcher creates a watcher for dir using fsnotify. The directory must
// already exist.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("directory not found", dir, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("error accessing directory", dir, errors.WatcherFailed, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("watch path is not a directory", dir, errors.WatcherFailed, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewFileError("failed to create fsnotify watcher", dir, errors.WatcherFailed, err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, errors.NewFileError("failed to add directory to watcher", dir, errors.WatcherFailed, err)
	}

	w := &Watcher{
		directory:  dir,
		events:     make(chan FileEvent),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		fsWatcher:  fsWatcher,
		pairWindow: DefaultPairWindow,
		now:        time.Now,
		known:      make(map[string]os.FileInfo),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.scan()

	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return w, nil
}

// scan records the entries already present so a later rename of one of them
// can be told apart from an unrelated create.
func (w *Watcher) scan() {
	entries, err := os.ReadDir(w.directory)
	if err != nil {
		log.LogWithFields(log.F("directory", w.directory), log.F("error", err)).Warn("Could not list directory")
		return
	}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		w.known[filepath.Join(w.directory, entry.Name())] = info
	}
}

// Events returns the channel of translated events. It is closed by Close.
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Directory returns the watched directory
func (w *Watcher) Directory() string {
	return w.directory
}

// Start begins translating fsnotify events in a separate goroutine
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return fmt.Errorf("watcher is closed")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true

	go w.loop()

	log.Debug("Watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.events)

	var pending *pendingRename

	for {
		select {
		case raw, ok := <-w.fsWatcher.Events:
			if !ok {
				log.Debug("fsWatcher.Events channel closed")
				return
			}

			ev, emit := w.translate(raw, &pending)
			if !emit {
				continue
			}

			// Blocking send: while the dispatcher is busy, events wait here
			// rather than being dropped.
			select {
			case w.events <- ev:
			case <-w.stopChan:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				log.Debug("fsWatcher.Errors channel closed")
				return
			}
			werr := errors.NewFileError("fsnotify watcher error", w.directory, errors.WatcherFailed, err)
			log.LogWithError(werr).Error("Watcher reported an error")

		case <-w.stopChan:
			return
		}
	}
}

// translate maps one raw operation to a FileEvent. pending holds a Rename
// that may pair with the event immediately after it. Any event consumes it,
// and it only turns a Create into a Moved when the created entry is the same
// file that was renamed.
func (w *Watcher) translate(raw fsnotify.Event, pending **pendingRename) (FileEvent, bool) {
	prev := *pending
	*pending = nil

	switch {
	case raw.Op.Has(fsnotify.Create):
		info, ok := w.stat(raw.Name)
		if !ok {
			return FileEvent{}, false
		}
		w.remember(raw.Name, info)
		if w.pairs(prev, info) {
			return FileEvent{Kind: Moved, Path: raw.Name, PreviousPath: prev.path, IsDir: info.IsDir()}, true
		}
		return FileEvent{Kind: Created, Path: raw.Name, IsDir: info.IsDir()}, true

	case raw.Op.Has(fsnotify.Rename):
		*pending = &pendingRename{path: raw.Name, info: w.forget(raw.Name), at: w.now()}
		return FileEvent{}, false

	case raw.Op.Has(fsnotify.Write):
		info, ok := w.stat(raw.Name)
		if !ok {
			return FileEvent{}, false
		}
		w.remember(raw.Name, info)
		return FileEvent{Kind: Modified, Path: raw.Name, IsDir: info.IsDir()}, true

	case raw.Op.Has(fsnotify.Remove):
		w.forget(raw.Name)
	}

	// Remove and Chmod are not reported
	return FileEvent{}, false
}

// pairs reports whether info is the destination of the rename in prev
func (w *Watcher) pairs(prev *pendingRename, info os.FileInfo) bool {
	if prev == nil || w.now().Sub(prev.at) > w.pairWindow {
		return false
	}
	if prev.info == nil {
		// Renamed before it could be inspected; adjacency is all we have
		return true
	}
	return os.SameFile(prev.info, info)
}

func (w *Watcher) remember(path string, info os.FileInfo) {
	if w.known == nil {
		w.known = make(map[string]os.FileInfo)
	}
	w.known[path] = info
}

func (w *Watcher) forget(path string) os.FileInfo {
	info := w.known[path]
	delete(w.known, path)
	return info
}

// stat returns the current FileInfo for path. Paths that vanished before we
// looked are skipped.
func (w *Watcher) stat(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", path), log.F("error", err)).Error("Error stating file")
		} else {
			log.LogWithFields(log.F("file", path)).Debug("File vanished before it could be inspected")
		}
		return nil, false
	}
	return info, true
}

// Close stops the event loop, releases the fsnotify handle and closes the
// Events channel. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return nil
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	w.mutex.Unlock()

	close(w.stopChan)
	err := w.fsWatcher.Close()
	if err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	if wasRunning {
		<-w.done
	} else {
		close(w.events)
	}

	log.Debug("Watcher stopped")
	return err
}

// IsRunning returns whether the event loop is active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
