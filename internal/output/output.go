// Package output provides colored output functions for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Writer defines the interface for user-facing output operations.
type Writer interface {
	Success(msg string)
	Successf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Plain(msg string)
	Plainf(format string, args ...interface{})
}

// ColoredWriter implements Writer with colored output.
// Success/info/plain messages go to stdout; warnings and errors to stderr,
// keeping stdout clean for pipeable command output.
type ColoredWriter struct {
	successColor *color.Color
	infoColor    *color.Color
	warnColor    *color.Color
	errorColor   *color.Color
	stdout       io.Writer
	stderr       io.Writer
	mu           sync.Mutex
}

// NewColoredWriter creates a new ColoredWriter instance.
func NewColoredWriter(stdout, stderr io.Writer) *ColoredWriter {
	return &ColoredWriter{
		successColor: color.New(color.FgGreen, color.Bold),
		infoColor:    color.New(color.FgCyan),
		warnColor:    color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed, color.Bold),
		stdout:       stdout,
		stderr:       stderr,
	}
}

// Success prints a success message in green
func (w *ColoredWriter) Success(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.successColor.Fprintln(w.stdout, msg)
}

// Successf prints a formatted success message
func (w *ColoredWriter) Successf(format string, args ...interface{}) {
	w.Success(fmt.Sprintf(format, args...))
}

// Info prints an info message in cyan
func (w *ColoredWriter) Info(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.infoColor.Fprintln(w.stdout, msg)
}

// Infof prints a formatted info message
func (w *ColoredWriter) Infof(format string, args ...interface{}) {
	w.Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message in yellow
func (w *ColoredWriter) Warn(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.warnColor.Fprintln(w.stderr, msg)
}

// Warnf prints a formatted warning message
func (w *ColoredWriter) Warnf(format string, args ...interface{}) {
	w.Warn(fmt.Sprintf(format, args...))
}

// Error prints an error message in red
func (w *ColoredWriter) Error(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.errorColor.Fprintln(w.stderr, msg)
}

// Errorf prints a formatted error message
func (w *ColoredWriter) Errorf(format string, args ...interface{}) {
	w.Error(fmt.Sprintf(format, args...))
}

// Plain prints a message without color
func (w *ColoredWriter) Plain(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.stdout, msg)
}

// Plainf prints a formatted message without color
func (w *ColoredWriter) Plainf(format string, args ...interface{}) {
	w.Plain(fmt.Sprintf(format, args...))
}

//nolint:gochecknoglobals // Package-level default writer keeps call sites terse
var (
	defaultWriter = NewColoredWriter(os.Stdout, os.Stderr)
	defaultMu     sync.Mutex
)

// SetDefault swaps the default writer (useful for testing).
func SetDefault(w *ColoredWriter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultWriter = w
}

// Default returns the current default writer.
func Default() *ColoredWriter {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultWriter
}

// Success prints a success message in green via the default writer
func Success(msg string) { Default().Success(msg) }

// Successf prints a formatted success message via the default writer
func Successf(format string, args ...interface{}) { Default().Successf(format, args...) }

// Info prints an info message in cyan via the default writer
func Info(msg string) { Default().Info(msg) }

// Infof prints a formatted info message via the default writer
func Infof(format string, args ...interface{}) { Default().Infof(format, args...) }

// Warn prints a warning message in yellow via the default writer
func Warn(msg string) { Default().Warn(msg) }

// Warnf prints a formatted warning message via the default writer
func Warnf(format string, args ...interface{}) { Default().Warnf(format, args...) }

// Error prints an error message in red via the default writer
func Error(msg string) { Default().Error(msg) }

// Errorf prints a formatted error message via the default writer
func Errorf(format string, args ...interface{}) { Default().Errorf(format, args...) }

// Plain prints a message without color via the default writer
func Plain(msg string) { Default().Plain(msg) }

// Plainf prints a formatted message without color via the default writer
func Plainf(format string, args ...interface{}) { Default().Plainf(format, args...) }
