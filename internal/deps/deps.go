// Package deps probes the external programs jobkit scripts shell out to,
// so `jobkit deps` can report what is installed before a cron job trips
// over a missing binary at 3am.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Binary describes one external program a script depends on.
type Binary struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
}

// Status reports the availability of a Binary on this host.
type Status struct {
	Binary
	Available bool
	Detail    string
}

// Known lists every external program the bundled scripts invoke.
func Known() []Binary {
	return []Binary{
		{
			Name:     "mytop",
			Command:  "mytop",
			Purpose:  "MySQL status snapshot for the mysql-report script",
			Optional: true,
		},
	}
}

// Check evaluates the provided binaries against PATH.
func Check(binaries []Binary) []Status {
	results := make([]Status, 0, len(binaries))
	for _, binary := range binaries {
		command := strings.TrimSpace(binary.Command)
		status := Status{Binary: binary}
		if command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Detail = path
		results = append(results, status)
	}
	return results
}
