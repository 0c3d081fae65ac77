// Package debug provides logging and buffer diagnostics for CLAP plugins.
//
// Logging is built on logrus. The package keeps a small printf-style
// surface for plugin code and exposes the underlying entries for structured
// fields.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/agilira/go-errors"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelFatal is for errors the plugin cannot recover from.
	LogLevelFatal
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) logrus() logrus.Level {
	switch l {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	case LogLevelError:
		return logrus.ErrorLevel
	case LogLevelFatal, LogLevelOff:
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseLevel parses a level name such as "debug" or "warn". "off"
// disables logging.
func ParseLevel(name string) (LogLevel, error) {
	if name == "off" || name == "OFF" || name == "none" {
		return LogLevelOff, nil
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return LogLevelInfo, errors.Wrap(err, ErrCodeBadLevel, "unknown log level").
			WithContext("level", name)
	}
	switch lvl {
	case logrus.TraceLevel, logrus.DebugLevel:
		return LogLevelDebug, nil
	case logrus.InfoLevel:
		return LogLevelInfo, nil
	case logrus.WarnLevel:
		return LogLevelWarn, nil
	case logrus.ErrorLevel:
		return LogLevelError, nil
	default:
		return LogLevelFatal, nil
	}
}

// ErrCodeBadLevel is returned by ParseLevel.
const ErrCodeBadLevel = "DEBUG_1001"

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // Include timestamp
	FlagShortFile             // Include short file name and line number
	FlagLongFile              // Include full file path and line number
	FlagPrefix                // Include the component field
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagPrefix

// Logger is a levelled logger backed by a logrus.Logger.
type Logger struct {
	base    *logrus.Logger
	prefix  atomic.Pointer[string]
	flags   atomic.Int32
	level   atomic.Int32
	enabled atomic.Bool
	file    *os.File
}

var defaultLogger = New(os.Stderr, "", DefaultFlags)

// New creates a new logger instance at LogLevelInfo.
func New(output io.Writer, prefix string, flags int) *Logger {
	l := &Logger{base: logrus.New()}
	l.base.SetOutput(output)
	l.SetPrefix(prefix)
	l.SetFlags(flags)
	l.SetLevel(LogLevelInfo)
	l.enabled.Store(true)
	return l
}

// NewFileLogger creates a logger that appends to filename.
func NewFileLogger(filename, prefix string, flags int) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, errors.Wrap(err, ErrCodeLogFile, "failed to create log directory").
			WithContext("file", filename)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeLogFile, "failed to open log file").
			WithContext("file", filename)
	}
	l := New(file, prefix, flags)
	l.file = file
	return l, nil
}

// Close closes the file opened by NewFileLogger and discards further
// output. It does nothing for other loggers.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.base.SetOutput(io.Discard)
	err := l.file.Close()
	l.file = nil
	return err
}

// ErrCodeLogFile is returned by NewFileLogger.
const ErrCodeLogFile = "DEBUG_1002"

// Logrus returns the underlying logger, for adding hooks.
func (l *Logger) Logrus() *logrus.Logger { return l.base }

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) { l.base.SetOutput(w) }

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
	l.base.SetLevel(level.logrus())
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel { return LogLevel(l.level.Load()) }

// SetPrefix sets the component field attached to every entry.
func (l *Logger) SetPrefix(prefix string) { l.prefix.Store(&prefix) }

// SetFlags sets the output formatting flags.
func (l *Logger) SetFlags(flags int) {
	l.flags.Store(int32(flags))
	l.base.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: flags&FlagTime == 0,
		FullTimestamp:    true,
		DisableQuote:     true,
	})
}

// SetEnabled enables or disables the logger.
func (l *Logger) SetEnabled(enabled bool) { l.enabled.Store(enabled) }

// IsEnabled returns whether the logger is enabled.
func (l *Logger) IsEnabled() bool { return l.enabled.Load() }

// Entry returns an entry carrying the logger's prefix, for structured
// logging.
func (l *Logger) Entry() *logrus.Entry {
	e := logrus.NewEntry(l.base)
	if p := *l.prefix.Load(); p != "" && l.flags.Load()&FlagPrefix != 0 {
		e = e.WithField("component", p)
	}
	return e
}

// WithFields returns an entry with fields added.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.Entry().WithFields(fields)
}

func (l *Logger) allowed(level LogLevel) bool {
	return l.enabled.Load() && level >= l.Level() && l.Level() != LogLevelOff
}

// log writes a message at level. skip is the number of frames between the
// caller of interest and log.
func (l *Logger) log(level LogLevel, skip int, format string, args ...interface{}) {
	if !l.allowed(level) {
		return
	}
	e := l.Entry()
	if flags := l.flags.Load(); flags&(FlagShortFile|FlagLongFile) != 0 {
		if _, file, line, ok := runtime.Caller(skip + 1); ok {
			if flags&FlagShortFile != 0 {
				file = filepath.Base(file)
			}
			e = e.WithField("caller", file+":"+strconv.Itoa(line))
		}
	}
	e.Logf(level.logrus(), format, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, 1, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, 1, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, 1, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, 1, format, args...)
}

// Fatal logs at panic level and panics. A host process must not be exited
// from inside a plugin, so this never calls os.Exit.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(LogLevelFatal, 1, format, args...)
	panic(fmt.Sprintf(format, args...))
}

// Global logger functions

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// SetPrefix sets the prefix for the default logger.
func SetPrefix(prefix string) {
	defaultLogger.SetPrefix(prefix)
}

// SetFlags sets the output formatting flags for the default logger.
func SetFlags(flags int) {
	defaultLogger.SetFlags(flags)
}

// SetEnabled enables or disables the default logger.
func SetEnabled(enabled bool) {
	defaultLogger.SetEnabled(enabled)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// Fatal logs a fatal error message using the default logger and panics.
func Fatal(format string, args ...interface{}) {
	defaultLogger.Fatal(format, args...)
}

// Conditional logging helpers

// DebugIf logs a debug message if the condition is true.
func DebugIf(condition bool, format string, args ...interface{}) {
	if condition {
		defaultLogger.Debug(format, args...)
	}
}

// WarnIf logs a warning message if the condition is true.
func WarnIf(condition bool, format string, args ...interface{}) {
	if condition {
		defaultLogger.Warn(format, args...)
	}
}

// ErrorIf logs an error message if the condition is true.
func ErrorIf(condition bool, format string, args ...interface{}) {
	if condition {
		defaultLogger.Error(format, args...)
	}
}
