package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"jobkit/internal/config"
	"jobkit/internal/history"
	"jobkit/internal/logging"
)

// State tracks the single-use lifecycle of a Job.
type State int

const (
	StateConstructed State = iota
	StateStarted
	StateFinished
)

// Option configures a Job at construction.
type Option func(*Job)

// WithFlags binds the common flag set parsed by the script's command.
func WithFlags(flags *Flags) Option {
	return func(j *Job) { j.flags = flags }
}

// WithQuiet suppresses banners and progress chatter.
func WithQuiet() Option {
	return func(j *Job) { j.quiet = true }
}

// WithReadOnly marks the run as read-only: configuration is loaded but
// never persisted, even on Finish.
func WithReadOnly() Option {
	return func(j *Job) { j.readOnly = true }
}

// WithLoggerOptions overrides logger construction (log file, console
// writer); used by tests and by scripts with unusual output needs.
func WithLoggerOptions(opts logging.Options) Option {
	return func(j *Job) { j.logOpts = opts }
}

// WithExit replaces the process-termination function (default os.Exit).
func WithExit(exit func(int)) Option {
	return func(j *Job) {
		if exit != nil {
			j.exit = exit
		}
	}
}

// WithHistoryPath overrides the run history database location.
func WithHistoryPath(path string) Option {
	return func(j *Job) { j.histPath = path }
}

// Job owns one configuration lifecycle and one logger for a single script
// invocation.
type Job struct {
	Name   string
	Out    *logging.Logger
	Args   Arguments
	Config config.Document

	flags    *Flags
	quiet    bool
	readOnly bool
	runID    string
	state    State

	configDir  string
	configPath string

	lock     *flock.Flock
	hist     *history.Store
	histPath string

	logOpts logging.Options
	scope   *logging.Scope
	exit    func(int)
}

// New constructs a Job, creating the tool's dot-directory and logger.
func New(name string, opts ...Option) (*Job, error) {
	j := &Job{
		Name:  name,
		flags: NewFlags(),
		runID: uuid.NewString(),
		exit:  os.Exit,
	}
	for _, opt := range opts {
		opt(j)
	}

	dir, err := config.ToolDir(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create tool directory: %w", err)
	}
	j.configDir = dir

	out, err := logging.New(name, logging.NewIndent(), j.logOpts)
	if err != nil {
		return nil, err
	}
	j.Out = out

	return j, nil
}

// RunID returns the unique identifier for this invocation.
func (j *Job) RunID() string { return j.runID }

// State reports the current lifecycle state.
func (j *Job) State() State { return j.state }

// ConfigPath returns the resolved config file location (empty before Start).
func (j *Job) ConfigPath() string { return j.configPath }

// Start transitions the job into its running state: merges arguments,
// applies the verbosity override, acquires the per-tool lock, loads
// configuration, and emits the entry banner. With allowMissingConfigFile
// false, a missing config file is fatal and no file is created.
func (j *Job) Start(allowMissingConfigFile bool) error {
	if j.state != StateConstructed {
		return fmt.Errorf("%s job has already been started", j.Name)
	}
	j.state = StateStarted

	j.Args = j.flags.arguments()
	if j.flags.Verbose {
		j.Out.SetConsoleLevel(slog.LevelDebug)
	}

	j.lock = flock.New(filepath.Join(j.configDir, "lock"))
	locked, err := j.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire job lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another %s job is already running", j.Name)
	}

	if !j.quiet {
		j.scope = j.Out.Enter(fmt.Sprintf("%s job started at %s", j.Name, config.Now()))
		j.Out.Debug("run id: " + j.runID)
	}

	path, err := config.ResolvePath(j.flags.ConfigFile, j.Name)
	if err != nil {
		return err
	}
	j.configPath = path
	if !j.quiet {
		j.Out.Info(fmt.Sprintf("Loading config from %s...", path))
	}

	doc, exists, err := config.Load(path)
	if err != nil {
		var parseErr *config.ParseError
		if errors.As(err, &parseErr) {
			scope := j.Out.EnterLevel("Config file couldn't be parsed!", slog.LevelError)
			j.Out.Error(parseErr.Content)
			scope.Close()
		}
		return err
	}
	if !exists {
		if !allowMissingConfigFile {
			return fmt.Errorf("no config file found at %s, and one is required", path)
		}
		if !j.quiet {
			j.Out.Info("No config file found. Continuing with default config...")
		}
	}
	j.Config = doc

	if !j.quiet && !j.readOnly {
		if last, ok := doc.LastRun(); ok {
			j.Out.Info("Last successful run: " + last.String())
		} else {
			j.Out.Info("This appears to be the first run.")
		}
	}

	j.openHistory()
	return nil
}

// Run history is best-effort: a broken database must not stop a cron job.
func (j *Job) openHistory() {
	path := j.histPath
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			j.Out.Warn("Run history unavailable: " + err.Error())
			return
		}
	}
	store, err := history.Open(path)
	if err != nil {
		j.Out.Warn("Run history unavailable: " + err.Error())
		return
	}
	if err := store.RecordStart(context.Background(), j.runID, j.Name, time.Now(), j.readOnly); err != nil {
		j.Out.Warn("Could not record run start: " + err.Error())
		_ = store.Close()
		return
	}
	j.hist = store
}

// Finish persists configuration (unless read-only), records the run, emits
// the exit banner, and terminates the process with exitCode. It does not
// return on the normal path.
func (j *Job) Finish(exitCode int) {
	if j.state == StateFinished {
		return
	}
	started := j.state == StateStarted
	j.state = StateFinished

	if started && !j.readOnly {
		j.Config.StampLastRun()
		if err := config.Save(j.configPath, j.Config); err != nil {
			j.Out.Error("Could not save config: " + err.Error())
			if exitCode == 0 {
				exitCode = 1
			}
		}
	}

	if j.hist != nil {
		if err := j.hist.RecordFinish(context.Background(), j.runID, time.Now(), exitCode); err != nil {
			j.Out.Warn("Could not record run finish: " + err.Error())
		}
		_ = j.hist.Close()
	}
	if j.lock != nil {
		_ = j.lock.Unlock()
	}

	if started && !j.quiet {
		j.scope.Close()
		j.Out.Info(fmt.Sprintf("%s job finished at %s", j.Name, config.Now()))
	}

	j.exit(exitCode)
}
