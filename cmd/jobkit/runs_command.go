package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jobkit/internal/history"
)

func newRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent job runs from the shared history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := history.DefaultPath()
			if err != nil {
				return err
			}
			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.RunID),
					run.JobName,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					finishedCell(run),
					exitCell(run),
					boolCell(run.ReadOnly),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"RUN", "JOB", "STARTED", "FINISHED", "EXIT", "RO"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

func finishedCell(run history.Run) string {
	if run.FinishedAt == nil {
		return "running"
	}
	return run.FinishedAt.Local().Format("2006-01-02 15:04:05")
}

func exitCell(run history.Run) string {
	if run.ExitCode == nil {
		return "-"
	}
	return strconv.Itoa(*run.ExitCode)
}

func boolCell(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
