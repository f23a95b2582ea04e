package main

import (
	"github.com/spf13/cobra"

	"jobkit/internal/command"
	"jobkit/internal/email"
	"jobkit/internal/job"
	"jobkit/internal/statusreport"
)

func newMysqlReportCommand() *cobra.Command {
	flags := job.NewFlags()

	cmd := &cobra.Command{
		Use:   "mysql-report",
		Short: "Mail a MySQL status snapshot collected with mytop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := job.New("Status Reporter", job.WithFlags(flags))
			if err != nil {
				return err
			}
			if err := j.Start(true); err != nil {
				return fail(j, "Job could not start", err)
			}

			reporter := statusreport.New(j.Out, command.New(j.Out))
			report, err := reporter.Collect(cmd.Context())
			if err != nil {
				return fail(j, "Status collection failed", err)
			}

			settings := j.EmailSettings()
			if settings.Enabled {
				err := sendToRecipients(j, email.Gmail(j.Out), settings,
					statusreport.Subject(), statusreport.HTMLBody(report))
				if err != nil {
					return fail(j, "Email delivery failed", err)
				}
			}

			j.Finish(0)
			return nil
		},
	}

	flags.Register(cmd)
	flags.RegisterEmail(cmd)

	return cmd
}
