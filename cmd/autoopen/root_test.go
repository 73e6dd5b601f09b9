package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"autoopen/internal/config"
	"autoopen/internal/errors"
	"autoopen/internal/monitor"
	"autoopen/internal/watch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe to write from the session goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRootCommandStructure(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["tui"])
	assert.True(t, names["watch"])

	for _, flag := range []string{"editor", "dir", "config", "debug", "log-json", "log-file"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestDefaultsPrecedence(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("editor: /from/file\ndirectory: /file/dir\n"), 0644))

	t.Run("file over built-ins", func(t *testing.T) {
		o := &rootOptions{cfgFile: cfgFile}
		d := o.defaults(&bytes.Buffer{})
		assert.Equal(t, "/from/file", d.EditorPath)
		assert.Equal(t, "/file/dir", d.WatchedDirectory)
	})

	t.Run("flags over file", func(t *testing.T) {
		o := &rootOptions{cfgFile: cfgFile, editor: "/from/flag"}
		d := o.defaults(&bytes.Buffer{})
		assert.Equal(t, "/from/flag", d.EditorPath)
		assert.Equal(t, "/file/dir", d.WatchedDirectory)
	})

	t.Run("broken file warns", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(broken, []byte("editor: [unterminated"), 0644))

		var warn bytes.Buffer
		o := &rootOptions{cfgFile: broken, dir: "/flag/dir"}
		d := o.defaults(&warn)
		assert.Contains(t, warn.String(), "error parsing config file")
		assert.Equal(t, "/flag/dir", d.WatchedDirectory)
	})
}

func TestRunWatchRejectsMissingEditor(t *testing.T) {
	var out syncBuffer
	err := runWatch(context.Background(), &out, config.New("/nonexistent/editor", t.TempDir()), false)

	require.Error(t, err)
	assert.True(t, errors.IsEditorNotFound(err))
	assert.Equal(t, 2, exitCode(err))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), "] error: application not found"))
}

func TestRunWatchPrintsActivity(t *testing.T) {
	editor := filepath.Join(t.TempDir(), "paint")
	require.NoError(t, os.WriteFile(editor, nil, 0755))
	dir := t.TempDir()

	var mu sync.Mutex
	var opened []string
	launcher := watch.LauncherFunc(func(_, path string) error {
		mu.Lock()
		defer mu.Unlock()
		opened = append(opened, path)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	errCh := make(chan error, 1)
	go func() {
		errCh <- runWatch(ctx, &out, config.New(editor, dir), false,
			monitor.WithSessionOptions(watch.WithDispatcherOptions(watch.WithLauncher(launcher))))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "started monitoring "+dir)
	}, 3*time.Second, 20*time.Millisecond, "monitoring should start")

	time.Sleep(100 * time.Millisecond)
	target := filepath.Join(dir, "photo1.png")
	require.NoError(t, os.WriteFile(target, nil, 0644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), target+" opened with "+editor)
	}, 3*time.Second, 20*time.Millisecond, "opened line should be printed")
	assert.Contains(t, out.String(), "new file created: "+target)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}

	mu.Lock()
	assert.Equal(t, []string{target}, opened)
	mu.Unlock()
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("error launching GUI")))
	assert.Equal(t, 2, exitCode(errors.NewConfigError("no folder to watch", "directory", errors.WatchDirUnavailable, nil)))
}
