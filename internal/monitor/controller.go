// Package monitor holds the state shared by every shell: the activity log,
// the monitoring status and the single active session.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"autoopen/internal/config"
	"autoopen/internal/errors"
	"autoopen/internal/log"
	"autoopen/internal/watch"
)

// Status is the indicator shown next to the start button
type Status string

const (
	StatusNotMonitoring Status = "not monitoring"
	StatusMonitoring    Status = "monitoring"
)

// Controller starts at most one monitoring session and records what happens
// in a Journal the shells render.
type Controller struct {
	journal  *watch.Journal
	now      func() time.Time
	sessOpts []watch.SessionOption

	mutex     sync.Mutex
	status    Status
	session   *watch.Session
	listeners []func(Status)
}

// Option customizes a Controller
type Option func(*Controller)

// WithSessionOptions passes options to every session the controller starts
func WithSessionOptions(opts ...watch.SessionOption) Option {
	return func(c *Controller) {
		c.sessOpts = append(c.sessOpts, opts...)
	}
}

// WithClock replaces time.Now for entries the controller writes itself
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController returns an idle controller with an empty log
func NewController(opts ...Option) *Controller {
	c := &Controller{
		journal: watch.NewJournal(),
		now:     time.Now,
		status:  StatusNotMonitoring,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Journal returns the activity log
func (c *Controller) Journal() *watch.Journal {
	return c.journal
}

// Status returns the current indicator value
func (c *Controller) Status() Status {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.status
}

// OnStatusChange registers fn to be called after every status change.
func (c *Controller) OnStatusChange(fn func(Status)) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.listeners = append(c.listeners, fn)
}

// AppendLog adds an entry to the activity log. It is the sink sessions write
// to and may be called from any goroutine.
func (c *Controller) AppendLog(entry watch.LogEntry) {
	c.journal.Append(entry)
}

func (c *Controller) logf(format string, args ...interface{}) {
	c.AppendLog(watch.LogEntry{Timestamp: c.now(), Message: fmt.Sprintf(format, args...)})
}

// StartMonitoring validates cfg, creates the folder if needed and subscribes
// to it. On failure the status stays "not monitoring" and the reason is
// written to the log.
func (c *Controller) StartMonitoring(cfg config.WatchConfig) error {
	c.mutex.Lock()
	if c.session != nil {
		dir := c.session.Config().WatchedDirectory
		c.mutex.Unlock()
		c.logf("error: already monitoring %s", dir)
		return errors.ErrAlreadyMonitoring
	}
	c.mutex.Unlock()

	if err := cfg.Validate(); err != nil {
		c.reject(cfg, err)
		return err
	}
	if err := cfg.Prepare(); err != nil {
		c.reject(cfg, err)
		return err
	}

	c.mutex.Lock()
	// Another start may have won while validating
	if c.session != nil {
		dir := c.session.Config().WatchedDirectory
		c.mutex.Unlock()
		c.logf("error: already monitoring %s", dir)
		return errors.ErrAlreadyMonitoring
	}
	session, err := watch.StartSession(cfg, watch.SinkFunc(c.AppendLog), c.sessOpts...)
	if err != nil {
		c.mutex.Unlock()
		wrapped := errors.NewConfigError("cannot watch folder", cfg.WatchedDirectory, errors.WatchDirUnavailable, err)
		c.reject(cfg, wrapped)
		return wrapped
	}
	c.session = session
	c.mutex.Unlock()

	c.logf("started monitoring %s", cfg.WatchedDirectory)
	c.setStatus(StatusMonitoring)
	return nil
}

// reject logs why a start failed
func (c *Controller) reject(cfg config.WatchConfig, err error) {
	log.LogWithError(err).Warn("Monitoring not started")

	if errors.IsEditorNotFound(err) {
		c.logf("error: application not found")
		return
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) {
		if cfg.WatchedDirectory == "" {
			c.logf("error: %s", cfgErr.Message())
			return
		}
		c.logf("error: %s: %s", cfgErr.Message(), cfg.WatchedDirectory)
		return
	}
	c.logf("error: %v", err)
}

func (c *Controller) setStatus(s Status) {
	c.mutex.Lock()
	if c.status == s {
		c.mutex.Unlock()
		return
	}
	c.status = s
	listeners := make([]func(Status), len(c.listeners))
	copy(listeners, c.listeners)
	c.mutex.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// SessionStatus reports on the active session, if any.
func (c *Controller) SessionStatus() (watch.SessionStatus, bool) {
	c.mutex.Lock()
	session := c.session
	c.mutex.Unlock()
	if session == nil {
		return watch.SessionStatus{}, false
	}
	return session.Status(), true
}

// Close ends the active session. An editor the session launched stays open
// and is not waited for.
func (c *Controller) Close() error {
	c.mutex.Lock()
	session := c.session
	c.session = nil
	c.mutex.Unlock()

	if session == nil {
		return nil
	}
	err := session.Close()
	c.setStatus(StatusNotMonitoring)
	return err
}
