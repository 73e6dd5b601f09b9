package watch

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntryString(t *testing.T) {
	e := LogEntry{Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Message: "started monitoring /in"}
	assert.Equal(t, "[2024-01-02 03:04:05] started monitoring /in", e.String())
}

func TestJournalAppendOnly(t *testing.T) {
	j := NewJournal()
	j.Append(LogEntry{Message: "one"})
	j.Append(LogEntry{Message: "two"})

	entries := j.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, []string{"one", "two"}, j.Messages(), "Entries must hand out a copy")
	assert.Equal(t, 2, j.Len())
}

func TestJournalSubscribers(t *testing.T) {
	j := NewJournal()
	j.Append(LogEntry{Message: "before"})

	var got []string
	j.Subscribe(func(e LogEntry) { got = append(got, e.Message) })
	j.Append(LogEntry{Message: "after"})

	assert.Equal(t, []string{"after"}, got)
}

func TestJournalSubscriberMayReadJournal(t *testing.T) {
	j := NewJournal()
	var seen int
	j.Subscribe(func(LogEntry) { seen = j.Len() })

	j.Append(LogEntry{Message: "x"})
	assert.Equal(t, 1, seen)
}

func TestJournalConcurrentAppend(t *testing.T) {
	j := NewJournal()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				j.Append(LogEntry{Message: fmt.Sprintf("%d-%d", n, k)})
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 400, j.Len())
}

func TestSinkFunc(t *testing.T) {
	var got LogEntry
	var s Sink = SinkFunc(func(e LogEntry) { got = e })
	s.Append(LogEntry{Message: "hi"})
	assert.Equal(t, "hi", got.Message)
}

func TestJournalSubscribeWithBacklog(t *testing.T) {
	j := NewJournal()
	j.Append(LogEntry{Message: "before"})

	var mu sync.Mutex
	var live []string
	backlog := j.SubscribeWithBacklog(func(e LogEntry) {
		mu.Lock()
		live = append(live, e.Message)
		mu.Unlock()
	})
	j.Append(LogEntry{Message: "after"})

	require.Len(t, backlog, 1)
	assert.Equal(t, "before", backlog[0].Message)
	assert.Equal(t, []string{"after"}, live)
}

func TestJournalSubscribeWithBacklogDuringAppends(t *testing.T) {
	j := NewJournal()
	const total = 500

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			j.Append(LogEntry{Message: fmt.Sprintf("%d", i)})
		}
	}()

	var mu sync.Mutex
	seen := map[string]int{}
	backlog := j.SubscribeWithBacklog(func(e LogEntry) {
		mu.Lock()
		seen[e.Message]++
		mu.Unlock()
	})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for _, e := range backlog {
		seen[e.Message]++
	}
	assert.Len(t, seen, total)
	for msg, n := range seen {
		assert.Equal(t, 1, n, "entry %s delivered %d times", msg, n)
	}
}
