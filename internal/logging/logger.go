package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"jobkit/internal/config"
)

// Options describes logger construction parameters. The zero value gives an
// info-level console on stdout and the default per-tool log file.
type Options struct {
	// LogFile overrides the file sink path (default ~/.<snake-name>/log).
	LogFile string
	// ConsoleLevel is the console sink's minimum level (default info).
	ConsoleLevel slog.Level
	// Console overrides the console sink writer (default os.Stdout).
	Console io.Writer
	// Timestamps prepends an ISO timestamp to every message line.
	Timestamps bool
}

type sinkSet struct {
	handler      slog.Handler
	consoleLevel *slog.LevelVar
	logFile      string
}

var (
	registryMu sync.Mutex
	registry   = map[string]*sinkSet{}
)

// Logger emits indented lines through the two sinks registered for its name.
type Logger struct {
	name         string
	indent       *Indent
	log          *slog.Logger
	consoleLevel *slog.LevelVar
	timestamps   bool
}

// New returns a logger handle for name sharing the given indent. The first
// construction for a name installs the console and file sinks; later
// constructions reuse them and ignore sink options.
func New(name string, indent *Indent, opts Options) (*Logger, error) {
	if indent == nil {
		indent = NewIndent()
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	set, ok := registry[name]
	if !ok {
		var err error
		set, err = newSinkSet(name, opts)
		if err != nil {
			return nil, err
		}
		registry[name] = set
	}

	return &Logger{
		name:         name,
		indent:       indent,
		log:          slog.New(set.handler),
		consoleLevel: set.consoleLevel,
		timestamps:   opts.Timestamps,
	}, nil
}

func newSinkSet(name string, opts Options) (*sinkSet, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	level := new(slog.LevelVar)
	level.Set(opts.ConsoleLevel)

	logFile := opts.LogFile
	if logFile == "" {
		dir, err := config.ToolDir(name)
		if err != nil {
			return nil, err
		}
		logFile = filepath.Join(dir, "log")
	}
	if dir := filepath.Dir(logFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", logFile, err)
	}

	return &sinkSet{
		handler: newTeeHandler(
			newLineHandler(console, level, false),
			newLineHandler(file, slog.LevelDebug, true),
		),
		consoleLevel: level,
		logFile:      logFile,
	}, nil
}

// Name returns the logger name the sinks are registered under.
func (l *Logger) Name() string { return l.name }

// Indent exposes the shared indentation state so collaborators can be
// constructed against the same depth.
func (l *Logger) Indent() *Indent { return l.indent }

// SetConsoleLevel adjusts the console sink's minimum level for every handle
// sharing this logger name. The file sink always records at debug.
func (l *Logger) SetConsoleLevel(level slog.Level) {
	l.consoleLevel.Set(level)
}

// Emit writes msg at the given level: one formatted line per normalized
// input line, indented to the current depth, through both sinks.
func (l *Logger) Emit(level slog.Level, msg any) {
	prefix := l.indent.Prefix()
	for _, line := range Lines(msg) {
		text := prefix
		if l.timestamps {
			text += time.Now().Format(time.RFC3339) + " "
		}
		text += line
		l.log.Log(context.Background(), level, text)
	}
}

// Critical emits msg above error severity.
func (l *Logger) Critical(msg any) { l.Emit(LevelCritical, msg) }

// Error emits msg at error severity.
func (l *Logger) Error(msg any) { l.Emit(slog.LevelError, msg) }

// Warn emits msg at warning severity.
func (l *Logger) Warn(msg any) { l.Emit(slog.LevelWarn, msg) }

// Info emits msg at info severity.
func (l *Logger) Info(msg any) { l.Emit(slog.LevelInfo, msg) }

// Debug emits msg at debug severity.
func (l *Logger) Debug(msg any) { l.Emit(slog.LevelDebug, msg) }

// Enter emits title (when non-empty) at info and increments the shared
// depth. Release the returned scope to restore it:
//
//	defer out.Enter("Checking hosts...").Close()
func (l *Logger) Enter(title string) *Scope {
	return l.EnterLevel(title, slog.LevelInfo)
}

// EnterLevel is Enter with an explicit severity for the title line.
// The depth still moves even when the level is filtered from the console.
func (l *Logger) EnterLevel(title string, level slog.Level) *Scope {
	if title != "" {
		l.Emit(level, title)
	}
	l.indent.Enter()
	return &Scope{indent: l.indent}
}

// EnterItems emits title, then each item one level deeper, then restores
// the depth. The batch form leaves no scope behind.
func (l *Logger) EnterItems(title string, items any, level slog.Level) {
	if title != "" {
		l.Emit(level, title)
	}
	l.indent.Enter()
	defer l.indent.Leave()
	l.Emit(level, items)
}

// Leave manually decrements the shared depth, floored at zero.
func (l *Logger) Leave() { l.indent.Leave() }

// DumpFault opens an error-severity scope titled heading and records the
// failure plus the current stack, one line at a time. Call it from the
// handler of an active fault.
func (l *Logger) DumpFault(heading string, err error) {
	scope := l.EnterLevel(heading, slog.LevelError)
	defer scope.Close()

	if err != nil {
		l.Error(err.Error())
	}
	for _, line := range strings.Split(strings.TrimRight(string(debug.Stack()), "\n"), "\n") {
		l.Error(strings.TrimRight(line, " \t"))
	}
}
