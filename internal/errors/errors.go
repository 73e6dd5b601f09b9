// Package errors provides standardized error handling for autoopen.
// It defines the error kinds the watcher can run into, typed errors that carry
// the offending path or parameter, and helpers for wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrEditorNotFound    = NewConfigError("application not found", "editor", EditorNotFound, nil)
	ErrAlreadyMonitoring = New("already monitoring")
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileCreateFailed
	// Config error kinds
	EditorNotFound
	WatchDirUnavailable
	// Runtime error kinds
	WatcherFailed
	LaunchFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Message returns the message without the wrapped cause
func (e *ApplicationError) Message() string {
	return e.msg
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// Is matches config errors of the same kind, so a ConfigError built for a
// specific path still satisfies errors.Is(err, ErrEditorNotFound).
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.kind == e.kind
}

// LaunchError represents a failure to open a file with the external editor
type LaunchError struct {
	ApplicationError
	editor string
	path   string
}

// NewLaunchError creates a new launch error
func NewLaunchError(editor, path string, err error) *LaunchError {
	return &LaunchError{
		ApplicationError: ApplicationError{
			msg:  "a problem occurred opening the file",
			err:  err,
			kind: LaunchFailed,
		},
		editor: editor,
		path:   path,
	}
}

// Editor returns the executable that failed
func (e *LaunchError) Editor() string {
	return e.editor
}

// Path returns the file the editor was asked to open
func (e *LaunchError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// KindOf returns the kind of the outermost application error in err's chain
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsInvalidConfig checks if the error is any configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsEditorNotFound checks if the error reports a missing editor executable
func IsEditorNotFound(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == EditorNotFound
	}
	return false
}
