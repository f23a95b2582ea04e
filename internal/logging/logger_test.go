package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"jobkit/internal/logging"
)

// newTestLogger registers sinks under the test's name with a throwaway
// console and log file. Distinct test names keep registry entries isolated.
func newTestLogger(t *testing.T, indent *logging.Indent) *logging.Logger {
	t.Helper()
	out, err := logging.New(t.Name(), indent, logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return out
}

func TestEmitIndentsEveryLine(t *testing.T) {
	console := &bytes.Buffer{}
	indent := logging.NewIndent()
	out, err := logging.New(t.Name(), indent, logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	scope := out.Enter("section")
	out.Info("first\nsecond")
	scope.Close()

	want := "section\n| first\n| second\n"
	if console.String() != want {
		t.Fatalf("unexpected console output:\n got %q\nwant %q", console.String(), want)
	}
}

func TestConsoleFiltersFileRecordsEverything(t *testing.T) {
	console := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "log")
	out, err := logging.New(t.Name(), logging.NewIndent(), logging.Options{
		LogFile: logFile,
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	out.Debug("quiet detail")
	out.Info("visible line")

	if strings.Contains(console.String(), "quiet detail") {
		t.Fatal("debug line leaked to info-level console")
	}
	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "quiet detail") {
		t.Fatal("file sink dropped a debug line")
	}
	if !strings.Contains(string(raw), "visible line") {
		t.Fatal("file sink dropped an info line")
	}
}

func TestFileSinkLineFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "log")
	out, err := logging.New(t.Name(), logging.NewIndent(), logging.Options{
		LogFile: logFile,
		Console: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	out.Warn("careful now")

	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	// <timestamp> <LEVEL padded to 8> <message>
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} WARNING  careful now\n$`)
	if !pattern.MatchString(string(raw)) {
		t.Fatalf("unexpected log line: %q", string(raw))
	}
}

func TestSetConsoleLevelAppliesToLaterHandles(t *testing.T) {
	console := &bytes.Buffer{}
	opts := logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	}
	first, err := logging.New(t.Name(), logging.NewIndent(), opts)
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	first.SetConsoleLevel(slog.LevelDebug)

	// A second handle for the same name reuses the sinks, including the
	// raised console level.
	second, err := logging.New(t.Name(), first.Indent(), logging.Options{})
	if err != nil {
		t.Fatalf("logging.New (reuse): %v", err)
	}
	second.Debug("now visible")

	if !strings.Contains(console.String(), "now visible") {
		t.Fatal("reused sink did not honor the raised console level")
	}
}

func TestSharedIndentNestsAcrossHandles(t *testing.T) {
	console := &bytes.Buffer{}
	indent := logging.NewIndent()
	parent, err := logging.New(t.Name(), indent, logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	helper, err := logging.New(t.Name(), indent, logging.Options{})
	if err != nil {
		t.Fatalf("logging.New (helper): %v", err)
	}

	scope := parent.Enter("task")
	helper.Info("helper detail")
	scope.Close()

	if !strings.Contains(console.String(), "| helper detail") {
		t.Fatalf("helper handle did not share indentation: %q", console.String())
	}
}

func TestEnterItemsRestoresDepth(t *testing.T) {
	console := &bytes.Buffer{}
	indent := logging.NewIndent()
	out, err := logging.New(t.Name(), indent, logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	out.EnterItems("values", []string{"one", "two"}, slog.LevelInfo)

	if indent.Depth() != 0 {
		t.Fatalf("batch form left depth at %d", indent.Depth())
	}
	want := "values\n| one\n| two\n"
	if console.String() != want {
		t.Fatalf("unexpected output: %q", console.String())
	}
}

func TestDumpFaultEmitsScopedStack(t *testing.T) {
	console := &bytes.Buffer{}
	indent := logging.NewIndent()
	out, err := logging.New(t.Name(), indent, logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	out.DumpFault("checker failed", os.ErrPermission)

	if indent.Depth() != 0 {
		t.Fatalf("DumpFault left depth at %d", indent.Depth())
	}
	output := console.String()
	if !strings.Contains(output, "checker failed") {
		t.Fatal("heading missing")
	}
	if !strings.Contains(output, "| "+os.ErrPermission.Error()) {
		t.Fatal("error text missing or unindented")
	}
	if !strings.Contains(output, "goroutine") {
		t.Fatal("stack trace missing")
	}
}

func TestLinesNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"empty string", "", nil},
		{"single line", "hello", []string{"hello"}},
		{"multi line", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
		{"interior blank", "a\n\nb", []string{"a", "", "b"}},
		{"string slice", []string{"x", "y\nz"}, []string{"x", "y", "z"}},
		{"int slice", []int{1, 2}, []string{"1", "2"}},
		{"scalar", 42, []string{"42"}},
		{"nil", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := logging.Lines(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Lines(%v) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Lines(%v) = %v, want %v", tc.in, got, tc.want)
				}
			}
		})
	}
}
