// Package log provides logging to the console and, optionally, a log file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger writes output to the console and an optional log file.
type Logger struct {
	mu     sync.Mutex
	file   *os.File
	out    io.Writer
	errOut io.Writer
}

// New creates a logger. When logDir is empty only the console is used;
// otherwise fitlife.log is appended to in that directory as well.
func New(logDir string) (*Logger, error) {
	if logDir == "" {
		return NewWithWriters(os.Stdout, os.Stderr), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "fitlife.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:   file,
		out:    io.MultiWriter(os.Stdout, file),
		errOut: io.MultiWriter(os.Stderr, file),
	}, nil
}

// NewWithWriters creates a logger over arbitrary writers. Useful in tests.
func NewWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{out: out, errOut: errOut}
}

func (l *Logger) write(w io.Writer, level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(w, "[%s] %s %s\n", time.Now().Format(timestampLayout), level, msg)
}

// Printf writes a formatted informational message.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.write(l.out, "INFO", fmt.Sprintf(format, args...))
}

// Println writes an informational message built from args.
func (l *Logger) Println(args ...interface{}) {
	l.write(l.out, "INFO", fmt.Sprint(args...))
}

// Warnf writes a formatted warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(l.out, "WARN", fmt.Sprintf(format, args...))
}

// Errorf writes a formatted error message to stderr (and the log file).
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(l.errOut, "ERROR", fmt.Sprintf(format, args...))
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Global logger instance
var globalLogger = NewWithWriters(os.Stdout, os.Stderr)

// Init replaces the global logger with one writing to logDir.
// Go's standard log package is redirected to the same destination so that
// library output (gorm, net/http) ends up in one place.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	SetDefault(logger)

	stdlog.SetOutput(logger.out)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// SetDefault swaps the global logger.
func SetDefault(l *Logger) {
	globalLogger = l
}

// Default returns the global logger.
func Default() *Logger {
	return globalLogger
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	globalLogger.Printf(format, args...)
}

// Println uses the global logger to print output.
func Println(args ...interface{}) {
	globalLogger.Println(args...)
}

// Warnf uses the global logger to print a warning.
func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}

// Close closes the global logger.
func Close() error {
	return globalLogger.Close()
}
