package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
)

var (
	std     = stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds)
	debugOn atomic.Bool
)

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetDebug toggles Debugf output.
func SetDebug(enabled bool) {
	debugOn.Store(enabled)
}

// Debugf logs verbose diagnostics, dropped unless SetDebug(true).
func Debugf(format string, args ...any) {
	if debugOn.Load() {
		write("DEBUG", format, args...)
	}
}

// Infof logs informational messages.
func Infof(format string, args ...any) { write("INFO", format, args...) }

// Warnf logs warnings.
func Warnf(format string, args ...any) { write("WARN", format, args...) }

// Errorf logs errors.
func Errorf(format string, args ...any) { write("ERROR", format, args...) }

func write(level string, format string, args ...any) {
	std.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// WithSpinner executes the given function while showing a spinner with the specified message.
func WithSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("green")
	if err != nil {
		return fmt.Errorf("coloring green: %w", err)
	}

	s.Start()
	s.FinalMSG = message + " \033[32m[done]\033[0m\n"
	defer s.Stop()

	return fn()
}
