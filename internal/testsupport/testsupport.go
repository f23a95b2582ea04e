// Package testsupport provides shared helpers for exercising jobs in
// isolated temp homes without touching the real user environment.
package testsupport

import (
	"bytes"
	"path/filepath"
	"testing"

	"jobkit/internal/logging"
)

// TempHome points HOME at a fresh temp directory and returns it, so tool
// dot-directories land somewhere disposable.
func TempHome(t testing.TB) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// LoggerOptions returns logging options with a buffered console and a temp
// log file, plus the console buffer for assertions. Pair with a unique
// logger name per test: sinks are registered process-wide by name.
func LoggerOptions(t testing.TB) (logging.Options, *bytes.Buffer) {
	t.Helper()
	console := &bytes.Buffer{}
	return logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	}, console
}

// ExitRecorder captures the exit code a Job would have terminated with.
type ExitRecorder struct {
	Called bool
	Code   int
}

// Func returns a replacement for os.Exit that records instead of exiting.
func (r *ExitRecorder) Func() func(int) {
	return func(code int) {
		r.Called = true
		r.Code = code
	}
}
