package watch

import (
	"sync"
	"time"

	"autoopen/internal/config"
	"autoopen/internal/log"

	"github.com/google/uuid"
)

// SessionStatus represents the current state of a monitoring session
type SessionStatus struct {
	ID           string        // Session identifier used in diagnostics
	Running      bool          // Whether events are still being delivered
	Directory    string        // Directory being watched
	Editor       string        // Editor files are opened with
	StartedAt    time.Time     // When the session began
	LastActivity time.Time     // Time of the last delivered event
	Stats        DispatchStats // What the dispatcher has done so far
}

// Session ties a Watcher to a Dispatcher. One goroutine drains the watcher's
// events and dispatches them one at a time, so a slow editor holds up the
// events behind it.
type Session struct {
	id         string
	cfg        config.WatchConfig
	watcher    *Watcher
	dispatcher *Dispatcher
	startedAt  time.Time

	// Closed when the dispatch loop has drained
	done chan struct{}

	mutex        sync.RWMutex
	lastActivity time.Time
	running      bool
	closeOnce    sync.Once
}

// SessionOption customizes a Session
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	dispatcher []DispatcherOption
	watcher    []WatcherOption
}

// WithDispatcherOptions passes options through to the Dispatcher
func WithDispatcherOptions(opts ...DispatcherOption) SessionOption {
	return func(o *sessionOptions) {
		o.dispatcher = append(o.dispatcher, opts...)
	}
}

// WithWatcherOptions passes options through to the Watcher
func WithWatcherOptions(opts ...WatcherOption) SessionOption {
	return func(o *sessionOptions) {
		o.watcher = append(o.watcher, opts...)
	}
}

// StartSession subscribes to cfg.WatchedDirectory and begins dispatching in
// the background. The directory must exist; callers validate and prepare cfg
// first.
func StartSession(cfg config.WatchConfig, sink Sink, opts ...SessionOption) (*Session, error) {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	watcher, err := NewWatcher(cfg.WatchedDirectory, o.watcher...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         uuid.New().String(),
		cfg:        cfg,
		watcher:    watcher,
		dispatcher: NewDispatcher(cfg, sink, o.dispatcher...),
		startedAt:  time.Now(),
		done:       make(chan struct{}),
		running:    true,
	}

	if err := watcher.Start(); err != nil {
		watcher.Close()
		return nil, err
	}

	go s.processEvents()

	log.LogWithFields(
		log.F("session", s.id),
		log.F("directory", cfg.WatchedDirectory),
		log.F("editor", cfg.EditorPath),
	).Info("Monitoring session started")
	return s, nil
}

// processEvents handles events from the watcher until its channel closes
func (s *Session) processEvents() {
	defer close(s.done)

	for ev := range s.watcher.Events() {
		s.mutex.Lock()
		s.lastActivity = time.Now()
		s.mutex.Unlock()

		log.LogWithFields(log.F("session", s.id), log.F("event", ev.String())).Debug("Dispatching event")
		s.dispatcher.Dispatch(ev)
	}

	s.mutex.Lock()
	s.running = false
	s.mutex.Unlock()
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Config returns the configuration the session was started with
func (s *Session) Config() config.WatchConfig {
	return s.cfg
}

// Status returns a snapshot of the session
func (s *Session) Status() SessionStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return SessionStatus{
		ID:           s.id,
		Running:      s.running,
		Directory:    s.cfg.WatchedDirectory,
		Editor:       s.cfg.EditorPath,
		StartedAt:    s.startedAt,
		LastActivity: s.lastActivity,
		Stats:        s.dispatcher.Stats(),
	}
}

// Close unsubscribes from the directory and returns without waiting for an
// editor that is still open; the event in flight finishes in the background.
// Calling it again is a no-op.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.watcher.Close()

		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()

		log.LogWithFields(log.F("session", s.id)).Info("Monitoring session stopped")
	})
	return err
}

// Done is closed once the last dispatched event, including its editor, has
// finished after Close.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
