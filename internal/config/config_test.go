package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"autoopen/internal/config"
	"autoopen/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func createEditor(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
	return path
}

func TestValidate(t *testing.T) {
	t.Run("existing editor and directory", func(t *testing.T) {
		cfg := config.New(createEditor(t), t.TempDir())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing directory is allowed", func(t *testing.T) {
		cfg := config.New(createEditor(t), filepath.Join(t.TempDir(), "later"))
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing editor", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "no-such-editor")
		err := config.New(missing, t.TempDir()).Validate()

		require.Error(t, err)
		assert.True(t, errors.IsEditorNotFound(err))
		assert.Contains(t, err.Error(), "application not found")
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("empty editor", func(t *testing.T) {
		err := config.New("", t.TempDir()).Validate()
		assert.True(t, errors.IsEditorNotFound(err))
	})

	t.Run("editor is a directory", func(t *testing.T) {
		err := config.New(t.TempDir(), t.TempDir()).Validate()
		assert.True(t, errors.IsEditorNotFound(err))
	})

	t.Run("watched path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain.txt")
		require.NoError(t, os.WriteFile(file, nil, 0644))

		err := config.New(createEditor(t), file).Validate()
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
		assert.False(t, errors.IsEditorNotFound(err))
	})

	t.Run("empty watched path", func(t *testing.T) {
		err := config.New(createEditor(t), "").Validate()
		require.Error(t, err)
		assert.Equal(t, errors.WatchDirUnavailable, errors.KindOf(err))
	})
}

func TestPrepare(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "save")
	cfg := config.New(createEditor(t), dir)

	require.NoError(t, cfg.Prepare())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Already present is fine
	assert.NoError(t, cfg.Prepare())
}

func TestPrepareFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := config.New("", filepath.Join(blocker, "sub")).Prepare()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))

	var fileErr *errors.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, errors.FileCreateFailed, fileErr.Kind())
}

func TestLoadDefaults(t *testing.T) {
	t.Run("load valid file", func(t *testing.T) {
		path := createTestYAML(t, "editor: /usr/bin/krita\ndirectory: /srv/renders\n")
		d, err := config.LoadDefaults(path)

		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/krita", d.EditorPath)
		assert.Equal(t, "/srv/renders", d.WatchedDirectory)
		assert.Equal(t, config.New("/usr/bin/krita", "/srv/renders"), d.WatchConfig())
	})

	t.Run("partial file keeps built-in directory", func(t *testing.T) {
		path := createTestYAML(t, "editor: /usr/bin/gimp\n")
		d, err := config.LoadDefaults(path)

		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/gimp", d.EditorPath)

		builtin, err := config.LoadDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, builtin.WatchedDirectory, d.WatchedDirectory)
	})

	t.Run("non-existent file", func(t *testing.T) {
		d, err := config.LoadDefaults(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
		require.NoError(t, err, "a missing file should fall back to defaults")
		assert.Empty(t, d.EditorPath)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := createTestYAML(t, "editor: [unterminated\n")
		_, err := config.LoadDefaults(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})
}

func TestOverride(t *testing.T) {
	d := config.Defaults{EditorPath: "/from/file", WatchedDirectory: "/file/dir"}

	assert.Equal(t, d, d.Override("", ""))
	assert.Equal(t, config.Defaults{EditorPath: "/flag", WatchedDirectory: "/file/dir"}, d.Override("/flag", ""))
	assert.Equal(t, config.Defaults{EditorPath: "/from/file", WatchedDirectory: "/flag/dir"}, d.Override("", "/flag/dir"))
}

func TestLoadDefaultsNeverWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	_, err := config.LoadDefaults(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
