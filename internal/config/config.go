package config

import (
	"fmt"
	"os"
	"path/filepath"

	"autoopen/internal/errors"

	"gopkg.in/yaml.v3"
)

// WatchConfig is what one monitoring session runs with. It is built from the
// shell's inputs when monitoring starts and is not changed afterwards.
type WatchConfig struct {
	EditorPath       string `yaml:"editor"`    // Executable that opens new images
	WatchedDirectory string `yaml:"directory"` // Folder watched non-recursively
}

// New returns a WatchConfig for the given editor and folder.
func New(editorPath, watchedDirectory string) WatchConfig {
	return WatchConfig{
		EditorPath:       editorPath,
		WatchedDirectory: watchedDirectory,
	}
}

// Validate checks that the editor resolves to an existing regular file and
// that the watched path, if it exists, is a directory.
func (c WatchConfig) Validate() error {
	info, err := os.Stat(c.EditorPath)
	if err != nil || !info.Mode().IsRegular() {
		return errors.NewConfigError("application not found", c.EditorPath, errors.EditorNotFound, err)
	}

	if c.WatchedDirectory == "" {
		return errors.NewConfigError("no folder to watch", "directory", errors.WatchDirUnavailable, nil)
	}
	info, err = os.Stat(c.WatchedDirectory)
	if err == nil && !info.IsDir() {
		return errors.NewConfigError("folder to watch is not a directory", c.WatchedDirectory, errors.WatchDirUnavailable, nil)
	}
	if err != nil && !os.IsNotExist(err) {
		return errors.NewConfigError("cannot access folder to watch", c.WatchedDirectory, errors.WatchDirUnavailable, err)
	}
	return nil
}

// Prepare creates the watched directory if it does not exist yet.
func (c WatchConfig) Prepare() error {
	if err := os.MkdirAll(c.WatchedDirectory, 0755); err != nil {
		fileErr := errors.NewFileError("failed to create directory", c.WatchedDirectory, errors.FileCreateFailed, err)
		return errors.NewConfigError("cannot prepare folder to watch", c.WatchedDirectory, errors.WatchDirUnavailable, fileErr)
	}
	return nil
}

// Defaults are the values the shell's inputs start out with. They are only a
// prefill; nothing the user types is written back.
type Defaults struct {
	EditorPath       string `yaml:"editor"`
	WatchedDirectory string `yaml:"directory"`
}

// WatchConfig turns the defaults into a session config as-is.
func (d Defaults) WatchConfig() WatchConfig {
	return New(d.EditorPath, d.WatchedDirectory)
}

// DefaultPath is where LoadDefaults looks when no file is given
// (~/.config/autoopen/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "autoopen", "config.yaml"), nil
}

// builtinDefaults returns the prefill used when no file provides one.
func builtinDefaults() Defaults {
	d := Defaults{}
	if home, err := os.UserHomeDir(); err == nil {
		d.WatchedDirectory = filepath.Join(home, "Pictures", "autoopen")
	}
	return d
}

// LoadDefaults reads prefill values from the YAML file at path. A missing
// file yields the built-in defaults; fields the file leaves empty keep them.
func LoadDefaults(path string) (Defaults, error) {
	d := builtinDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("error reading config file: %w", err)
	}

	var fromFile Defaults
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return d, fmt.Errorf("error parsing config file: %w", err)
	}

	if fromFile.EditorPath != "" {
		d.EditorPath = fromFile.EditorPath
	}
	if fromFile.WatchedDirectory != "" {
		d.WatchedDirectory = fromFile.WatchedDirectory
	}
	return d, nil
}

// Override replaces any field for which a non-empty value is given. Used to
// layer command-line flags over file defaults.
func (d Defaults) Override(editorPath, watchedDirectory string) Defaults {
	if editorPath != "" {
		d.EditorPath = editorPath
	}
	if watchedDirectory != "" {
		d.WatchedDirectory = watchedDirectory
	}
	return d
}
