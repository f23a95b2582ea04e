// Package command runs external programs with logged invocations and
// captured output, allowing non-zero exit codes to be treated as success.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"jobkit/internal/logging"
)

// ErrNotFound reports that the requested binary is not on PATH. Callers
// treat it as a soft failure: log and continue.
var ErrNotFound = exec.ErrNotFound

// Executor abstracts process execution for testability.
type Executor interface {
	// Run executes binary with args in dir, returning combined
	// stdout+stderr and the exit code.
	Run(ctx context.Context, binary string, args []string, dir string) ([]byte, int, error)
}

type processExecutor struct{}

func (processExecutor) Run(ctx context.Context, binary string, args []string, dir string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return output, -1, err
	}
	return output, 0, nil
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// Runner executes commands while narrating them through the job's logger.
type Runner struct {
	out  *logging.Logger
	exec Executor
}

// New constructs a Runner bound to the given logger.
func New(out *logging.Logger, opts ...Option) *Runner {
	runner := &Runner{out: out, exec: processExecutor{}}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Request describes a single invocation.
type Request struct {
	// Command is the binary followed by its arguments.
	Command []string
	// Dir is the working directory; empty means inherit.
	Dir string
	// AcceptedCodes lists exit codes treated as success beyond zero.
	AcceptedCodes []int
	// Level is the severity for the invocation and output lines
	// (default debug).
	Level slog.Level
}

// ExitError reports a rejected exit code together with the child's output.
type ExitError struct {
	Command []string
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", strings.Join(e.Command, " "), e.Code)
}

// Output runs the request and returns the combined stdout+stderr text.
// A missing binary surfaces as ErrNotFound; a rejected exit code as an
// *ExitError logged at error severity.
func (r *Runner) Output(ctx context.Context, req Request) (string, error) {
	if len(req.Command) == 0 {
		return "", errors.New("command required")
	}
	level := req.Level
	if level == 0 {
		level = slog.LevelDebug
	}

	r.out.Emit(level, "running command: "+strings.Join(req.Command, " "))

	raw, code, err := r.exec.Run(ctx, req.Command[0], req.Command[1:], req.Dir)
	if err != nil {
		return "", fmt.Errorf("run %s: %w", req.Command[0], err)
	}

	output := string(raw)
	if code != 0 && !accepted(code, req.AcceptedCodes) {
		r.out.EnterItems(fmt.Sprintf("command exited with code %d:", code), output, slog.LevelError)
		return output, &ExitError{Command: req.Command, Code: code, Output: output}
	}

	r.out.EnterItems("command output:", output, level)
	return output, nil
}

func accepted(code int, acceptedCodes []int) bool {
	for _, candidate := range acceptedCodes {
		if candidate == code {
			return true
		}
	}
	return false
}
