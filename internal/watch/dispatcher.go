package watch

import (
	"fmt"
	"sync"
	"time"

	"autoopen/internal/config"
	"autoopen/internal/errors"
	"autoopen/internal/log"
)

// Dispatcher turns classified events into log entries and editor launches.
// It keeps no memory of past events: the same event dispatched twice has its
// effects twice.
type Dispatcher struct {
	cfg      config.WatchConfig
	sink     Sink
	launcher Launcher
	now      func() time.Time

	mutex    sync.RWMutex
	handled  int
	launched int
	failed   int
}

// DispatcherOption customizes a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithLauncher replaces the os/exec launcher
func WithLauncher(l Launcher) DispatcherOption {
	return func(d *Dispatcher) {
		d.launcher = l
	}
}

// WithClock replaces time.Now for entry timestamps
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher creates a dispatcher that logs to sink and opens files with
// cfg.EditorPath.
func NewDispatcher(cfg config.WatchConfig, sink Sink, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		sink:     sink,
		launcher: NewExecLauncher(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch classifies ev and carries out the decision synchronously. When a
// launch is due it does not return until the editor has exited.
func (d *Dispatcher) Dispatch(ev FileEvent) Decision {
	decision := Classify(ev)

	d.mutex.Lock()
	d.handled++
	d.mutex.Unlock()

	switch decision.Action {
	case ActionIgnore:
		log.LogWithFields(log.F("event", ev.String())).Debug("Ignoring event")
	case ActionLog:
		d.emit(decision.Message)
	case ActionLogAndLaunch:
		d.emit(decision.Message)
		d.Launch(decision.Target)
	}
	return decision
}

// Launch opens path in the configured editor and logs the outcome. Errors
// are reported in the log and otherwise dropped.
func (d *Dispatcher) Launch(path string) {
	editor := d.cfg.EditorPath

	if err := d.launcher.Launch(editor, path); err != nil {
		launchErr := errors.NewLaunchError(editor, path, err)
		log.LogWithError(launchErr).Warn("Editor launch failed")

		d.mutex.Lock()
		d.failed++
		d.mutex.Unlock()

		d.emit(fmt.Sprintf("error: %s: %v", launchErr.Message(), err))
		return
	}

	d.mutex.Lock()
	d.launched++
	d.mutex.Unlock()

	d.emit(fmt.Sprintf("%s opened with %s", path, editor))
}

// DispatchStats counts what the dispatcher has done so far
type DispatchStats struct {
	Handled  int // events classified, including ignored ones
	Launched int // editor runs that exited cleanly
	Failed   int // editor runs that could not start or exited non-zero
}

// Stats returns the counters
func (d *Dispatcher) Stats() DispatchStats {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return DispatchStats{Handled: d.handled, Launched: d.launched, Failed: d.failed}
}

func (d *Dispatcher) emit(message string) {
	d.sink.Append(LogEntry{Timestamp: d.now(), Message: message})
}
