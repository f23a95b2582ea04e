// Package statusreport collects a MySQL status snapshot via the external
// `mytop` program for mailing to the operator.
package statusreport

import (
	"context"
	"errors"
	"fmt"
	"os"

	"jobkit/internal/command"
	"jobkit/internal/logging"
)

// MytopBinary is the external program producing the snapshot.
const MytopBinary = "mytop"

// Reporter runs mytop and shapes its output for delivery.
type Reporter struct {
	out    *logging.Logger
	runner *command.Runner
}

// New constructs a Reporter using the given command runner.
func New(out *logging.Logger, runner *command.Runner) *Reporter {
	return &Reporter{out: out, runner: runner}
}

// Collect runs mytop and returns its report text. A missing binary is a
// soft failure: the returned report says so and no error is raised, so the
// email still tells the operator what went wrong. Other execution failures
// propagate.
func (r *Reporter) Collect(ctx context.Context) (string, error) {
	scope := r.out.Enter("Running 'mytop'...")
	defer scope.Close()

	report, err := r.runner.Output(ctx, command.Request{
		Command: []string{MytopBinary, "-b"},
	})
	if err != nil {
		if errors.Is(err, command.ErrNotFound) {
			report = fmt.Sprintf("'mytop' failed. Is it installed? The error was: %v", err)
			r.out.Error(report)
			return report, nil
		}
		return "", err
	}

	r.out.Info(report)
	r.out.Info("done.")
	return report, nil
}

// Subject builds the email subject for this machine's report.
func Subject() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown host"
	}
	return "Status report for " + hostname
}

// HTMLBody wraps the report text for the HTML email body.
func HTMLBody(report string) string {
	return fmt.Sprintf("<html><pre>%s</pre></html>", report)
}
