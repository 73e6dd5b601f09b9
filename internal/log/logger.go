package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"autoopen/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger
type Option func(*options)

// WithOutput sends log lines to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithFile additionally appends log lines to the file at path
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// Logger is a thin wrapper over a logrus entry
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a logger writing to stdout unless overridden by opts
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	var file *os.File
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file %s: %v\n", o.file, err)
		} else {
			file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return &Logger{entry: logrus.NewEntry(base), file: file}
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Close releases the log file, if one was opened
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Shutdown closes the package-level logger's file
func Shutdown() error {
	return logger.Close()
}

// SetDebug toggles Debug output for every logger
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError attaches err and whatever context its type carries
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}

	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var launchErr *errors.LaunchError
	switch {
	case errors.As(err, &launchErr):
		fields = append(fields, F("editor", launchErr.Editor()), F("path", launchErr.Path()))
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
	}
	return l.With(fields...)
}

func (l *Logger) Info(msg string)  { l.entry.Info(msg) }
func (l *Logger) Warn(msg string)  { l.entry.Warn(msg) }
func (l *Logger) Error(msg string) { l.entry.Error(msg) }

func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug logs msg only when debug output is enabled
func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.entry.Debug(msg)
	}
}

// Debugf logs a formatted message only when debug output is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

func Info(msg string)  { logger.Info(msg) }
func Warn(msg string)  { logger.Warn(msg) }
func Error(msg string) { logger.Error(msg) }
func Debug(msg string) { logger.Debug(msg) }

func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err attached
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}
