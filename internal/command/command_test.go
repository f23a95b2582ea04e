package command_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"jobkit/internal/command"
	"jobkit/internal/logging"
)

type fakeExecutor struct {
	output []byte
	code   int
	err    error

	gotBinary string
	gotArgs   []string
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string, _ string) ([]byte, int, error) {
	f.gotBinary = binary
	f.gotArgs = args
	return f.output, f.code, f.err
}

func newRunner(t *testing.T, exec command.Executor) (*command.Runner, *bytes.Buffer) {
	t.Helper()
	console := &bytes.Buffer{}
	out, err := logging.New(t.Name(), logging.NewIndent(), logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return command.New(out, command.WithExecutor(exec)), console
}

func TestOutputReturnsCombinedText(t *testing.T) {
	exec := &fakeExecutor{output: []byte("row one\nrow two\n")}
	runner, _ := newRunner(t, exec)

	got, err := runner.Output(context.Background(), command.Request{Command: []string{"mytop", "-b"}})
	if err != nil {
		t.Fatalf("Output returned error: %v", err)
	}
	if got != "row one\nrow two\n" {
		t.Fatalf("unexpected output: %q", got)
	}
	if exec.gotBinary != "mytop" || len(exec.gotArgs) != 1 || exec.gotArgs[0] != "-b" {
		t.Fatalf("unexpected invocation: %s %v", exec.gotBinary, exec.gotArgs)
	}
}

func TestOutputRejectsUnacceptedExitCode(t *testing.T) {
	runner, _ := newRunner(t, &fakeExecutor{output: []byte("boom"), code: 2})

	_, err := runner.Output(context.Background(), command.Request{Command: []string{"prog"}})
	var exitErr *command.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 2 || exitErr.Output != "boom" {
		t.Fatalf("unexpected exit error: %+v", exitErr)
	}
}

func TestOutputAcceptsListedExitCode(t *testing.T) {
	runner, _ := newRunner(t, &fakeExecutor{output: []byte("fine"), code: 2})

	got, err := runner.Output(context.Background(), command.Request{
		Command:       []string{"prog"},
		AcceptedCodes: []int{2},
	})
	if err != nil {
		t.Fatalf("accepted code still errored: %v", err)
	}
	if got != "fine" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestOutputSurfacesMissingBinary(t *testing.T) {
	missing := &exec.Error{Name: "mytop", Err: exec.ErrNotFound}
	runner, _ := newRunner(t, &fakeExecutor{err: missing})

	_, err := runner.Output(context.Background(), command.Request{Command: []string{"mytop"}})
	if !errors.Is(err, command.ErrNotFound) {
		t.Fatalf("expected ErrNotFound in chain, got %v", err)
	}
}
