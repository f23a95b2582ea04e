package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobkit/internal/deps"
)

func newDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external programs the bundled jobs depend on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := deps.Check(deps.Known())

			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				state := "missing"
				if status.Available {
					state = "ok"
				} else if !status.Optional {
					missingRequired = true
				}
				rows = append(rows, []string{status.Name, state, status.Detail, status.Purpose})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"BINARY", "STATUS", "DETAIL", "PURPOSE"},
				rows,
				nil,
			))

			if missingRequired {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}
}
