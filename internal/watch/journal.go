package watch

import (
	"fmt"
	"sync"
	"time"
)

// TimestampLayout is how LogEntry timestamps are rendered
const TimestampLayout = "2006-01-02 15:04:05"

// LogEntry is one line of the user-facing activity log
type LogEntry struct {
	Timestamp time.Time
	Message   string
}

// String renders the entry as "[YYYY-MM-DD HH:MM:SS] message"
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.Format(TimestampLayout), e.Message)
}

// Sink receives log entries. Implementations must be safe to call from the
// session goroutine.
type Sink interface {
	Append(entry LogEntry)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(entry LogEntry)

// Append calls f(entry)
func (f SinkFunc) Append(entry LogEntry) {
	f(entry)
}

// Journal is an append-only, goroutine-safe log. Subscribers are called after
// each append, outside the lock, in the appending goroutine.
type Journal struct {
	mu          sync.Mutex
	entries     []LogEntry
	subscribers []func(LogEntry)
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{}
}

// Append records entry and notifies subscribers
func (j *Journal) Append(entry LogEntry) {
	j.mu.Lock()
	j.entries = append(j.entries, entry)
	subs := make([]func(LogEntry), len(j.subscribers))
	copy(subs, j.subscribers)
	j.mu.Unlock()

	for _, fn := range subs {
		fn(entry)
	}
}

// Subscribe registers fn for entries appended from now on
func (j *Journal) Subscribe(fn func(LogEntry)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.subscribers = append(j.subscribers, fn)
}

// SubscribeWithBacklog registers fn and returns the entries appended before
// it, in one step. Every entry is either in the backlog or passed to fn,
// never both.
func (j *Journal) SubscribeWithBacklog(fn func(LogEntry)) []LogEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.subscribers = append(j.subscribers, fn)
	backlog := make([]LogEntry, len(j.entries))
	copy(backlog, j.entries)
	return backlog
}

// Entries returns a copy of everything appended so far, oldest first
func (j *Journal) Entries() []LogEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]LogEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Messages returns just the message text of every entry
func (j *Journal) Messages() []string {
	entries := j.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

// Len returns the number of entries
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
