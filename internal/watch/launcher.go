package watch

import (
	"os/exec"

	"autoopen/internal/log"
)

// Launcher opens path with the editor executable and returns once the editor
// process has exited.
type Launcher interface {
	Launch(editor, path string) error
}

// LauncherFunc adapts a function to Launcher
type LauncherFunc func(editor, path string) error

// Launch calls f(editor, path)
func (f LauncherFunc) Launch(editor, path string) error {
	return f(editor, path)
}

// ExecLauncher runs the editor as a child process with the file as its only
// argument. There is no timeout: an editor that never exits blocks forever.
type ExecLauncher struct{}

// NewExecLauncher returns the os/exec backed launcher
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// Launch starts editor with path and waits for it. A spawn failure or a
// non-zero exit status is returned as is.
func (l *ExecLauncher) Launch(editor, path string) error {
	cmd := exec.Command(editor, path)
	log.LogWithFields(log.F("editor", editor), log.F("path", path)).Debug("Spawning editor")
	return cmd.Run()
}
