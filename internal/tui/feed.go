package tui

import (
	"sync"

	"autoopen/internal/tui/messages"
	"autoopen/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// feed queues journal entries for the program. Appending never blocks, so a
// program that stopped reading cannot stall the session goroutine.
type feed struct {
	mu      sync.Mutex
	pending []watch.LogEntry
	wake    chan struct{}
}

// newFeed subscribes to j and returns the entries already in it. Those are
// not queued again.
func newFeed(j *watch.Journal) (*feed, []watch.LogEntry) {
	f := &feed{wake: make(chan struct{}, 1)}
	backlog := j.SubscribeWithBacklog(f.push)
	return f, backlog
}

func (f *feed) push(e watch.LogEntry) {
	f.mu.Lock()
	f.pending = append(f.pending, e)
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// wait blocks until entries are pending and returns all of them
func (f *feed) wait() tea.Msg {
	<-f.wake
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.pending
	f.pending = nil
	return messages.EntriesMsg{Entries: entries}
}
