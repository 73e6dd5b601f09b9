package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCreated(t *testing.T) {
	tests := []struct {
		name   string
		ev     FileEvent
		action Action
		msg    string
	}{
		{"png", FileEvent{Kind: Created, Path: "photo1.png"}, ActionLogAndLaunch, "new file created: photo1.png"},
		{"any other extension", FileEvent{Kind: Created, Path: "/in/notes.txt"}, ActionLogAndLaunch, "new file created: /in/notes.txt"},
		{"no extension", FileEvent{Kind: Created, Path: "/in/README"}, ActionLogAndLaunch, "new file created: /in/README"},
		{"transient", FileEvent{Kind: Created, Path: "cache.tmp"}, ActionIgnore, ""},
		{"transient with dir", FileEvent{Kind: Created, Path: "/in/x.png.tmp"}, ActionIgnore, ""},
		{"uppercase TMP is not transient", FileEvent{Kind: Created, Path: "cache.TMP"}, ActionLogAndLaunch, "new file created: cache.TMP"},
		{"directory", FileEvent{Kind: Created, Path: "/in/sub.png", IsDir: true}, ActionIgnore, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.ev)
			assert.Equal(t, tt.action, d.Action)
			assert.Equal(t, tt.msg, d.Message)
			if tt.action == ActionLogAndLaunch {
				assert.Equal(t, tt.ev.Path, d.Target)
			} else {
				assert.Empty(t, d.Target)
			}
		})
	}
}

func TestClassifyModified(t *testing.T) {
	d := Classify(FileEvent{Kind: Modified, Path: "/in/a.png"})
	assert.Equal(t, ActionLog, d.Action)
	assert.Equal(t, "file changed: /in/a.png", d.Message)
	assert.Empty(t, d.Target, "modified files are never opened")

	for _, path := range []string{"/in/a.jpg", "/in/a.PNG", "/in/a.png.bak", "/in/a.tmp", "/in/png"} {
		assert.Equal(t, ActionIgnore, Classify(FileEvent{Kind: Modified, Path: path}).Action, path)
	}

	assert.Equal(t, ActionIgnore, Classify(FileEvent{Kind: Modified, Path: "/in/dir.png", IsDir: true}).Action)
}

func TestClassifyMoved(t *testing.T) {
	d := Classify(FileEvent{Kind: Moved, PreviousPath: "draft.png", Path: "final.png"})
	assert.Equal(t, ActionLogAndLaunch, d.Action)
	assert.Equal(t, "file renamed: draft.png -> final.png", d.Message)
	assert.Equal(t, "final.png", d.Target, "the destination is opened, not the source")

	// Atomic save: temporary file renamed to its final name
	d = Classify(FileEvent{Kind: Moved, PreviousPath: "/in/save.tmp", Path: "/in/out.png"})
	assert.Equal(t, ActionLogAndLaunch, d.Action)
	assert.Equal(t, "/in/out.png", d.Target)

	// Only the destination matters
	assert.Equal(t, ActionIgnore, Classify(FileEvent{Kind: Moved, PreviousPath: "a.png", Path: "a.jpg"}).Action)
	assert.Equal(t, ActionIgnore, Classify(FileEvent{Kind: Moved, PreviousPath: "a.png", Path: "b.Png"}).Action)
	assert.Equal(t, ActionIgnore, Classify(FileEvent{Kind: Moved, PreviousPath: "a", Path: "b.png", IsDir: true}).Action)
}

func TestClassifyUnknownKind(t *testing.T) {
	assert.Equal(t, ActionIgnore, Classify(FileEvent{Kind: Kind(42), Path: "x.png"}).Action)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestFileEventString(t *testing.T) {
	assert.Equal(t, "created /a.png", FileEvent{Kind: Created, Path: "/a.png"}.String())
	assert.Equal(t, "moved /a.png -> /b.png", FileEvent{Kind: Moved, PreviousPath: "/a.png", Path: "/b.png"}.String())
	assert.Equal(t, "/b.png", FileEvent{Kind: Moved, PreviousPath: "/a.png", Path: "/b.png"}.DestinationPath())
}
