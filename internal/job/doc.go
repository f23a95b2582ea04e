// Package job ties together argument parsing, the config store, the
// indented logger, and run history into a single start/finish lifecycle.
//
// A Job moves constructed -> started -> finished exactly once per process.
// Start parses flags, applies verbosity, acquires the per-tool lock, and
// loads configuration; Finish persists configuration (unless the run is
// read-only), records the run, and terminates the process with the given
// exit code. Scripts hang their own logic off the Job between the two.
package job
