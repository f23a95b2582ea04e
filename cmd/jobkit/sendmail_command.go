package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobkit/internal/config"
	"jobkit/internal/email"
	"jobkit/internal/job"
	"jobkit/internal/logging"
)

func newSendEmailCommand() *cobra.Command {
	flags := job.NewFlags()
	var subject string
	var body string
	var attach []string
	var host string

	cmd := &cobra.Command{
		Use:   "send-email",
		Short: "Send an email with the job's configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := job.New("Email Sender", job.WithFlags(flags))
			if err != nil {
				return err
			}
			if err := j.Start(true); err != nil {
				return fail(j, "Job could not start", err)
			}

			settings := j.EmailSettings()
			if !settings.Enabled {
				return fail(j, "Cannot send", fmt.Errorf("email is not configured"))
			}

			attachments, err := config.SortedGlobPaths(attach...)
			if err != nil {
				return fail(j, "Bad attachment pattern", err)
			}
			if len(attach) > 0 && len(attachments) == 0 {
				return fail(j, "Bad attachment pattern", fmt.Errorf("no files match %v", attach))
			}
			for _, path := range attachments {
				label := ""
				if info, err := os.Stat(path); err == nil {
					label = " (" + logging.BytesLabel(info.Size()) + ")"
				}
				j.Out.Debug("attaching " + path + label)
			}

			sender := email.New(j.Out, host)
			if err := sendToRecipients(j, sender, settings, subject, body, attachments...); err != nil {
				return fail(j, "Email delivery failed", err)
			}

			j.Finish(0)
			return nil
		},
	}

	flags.Register(cmd)
	flags.RegisterEmail(cmd)
	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&body, "body", "", "HTML message body")
	cmd.Flags().StringArrayVar(&attach, "attach", nil, "File or glob pattern to attach (repeatable)")
	cmd.Flags().StringVar(&host, "host", email.GmailHost, "SMTP relay host")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
