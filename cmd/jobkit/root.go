package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jobkit",
		Short:         "Personal automation jobs with shared config, logging, and email",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newIPCheckCommand())
	rootCmd.AddCommand(newMysqlReportCommand())
	rootCmd.AddCommand(newSendEmailCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newRunsCommand())
	rootCmd.AddCommand(newDepsCommand())

	return rootCmd
}
