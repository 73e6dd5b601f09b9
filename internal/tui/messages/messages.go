package messages

import (
	"autoopen/internal/watch"
)

// EntriesMsg carries journal entries appended since the last one
type EntriesMsg struct {
	Entries []watch.LogEntry
}

// StartMsg asks the model to start monitoring with the form's values
type StartMsg struct {
	EditorPath       string
	WatchedDirectory string
}

// ClipboardMsg reports the outcome of copying the log
type ClipboardMsg struct {
	Lines int
	Err   error
}
