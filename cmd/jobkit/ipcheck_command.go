package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobkit/internal/email"
	"jobkit/internal/ipcheck"
	"jobkit/internal/job"
	"jobkit/internal/notify"
)

func newIPCheckCommand() *cobra.Command {
	flags := job.NewFlags()
	var hostname string

	cmd := &cobra.Command{
		Use:   "ipcheck",
		Short: "Compare this host's public IP against its DNS record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := job.New("Ip Checker", job.WithFlags(flags))
			if err != nil {
				return err
			}
			if err := j.Start(true); err != nil {
				return fail(j, "Job could not start", err)
			}

			result, err := ipcheck.New(j.Out).Check(cmd.Context(), hostname)
			if err != nil {
				return fail(j, "IP check failed", err)
			}

			if result.Match() {
				j.Out.Info("Addresses look good. Bye!")
				j.Finish(0)
				return nil
			}

			j.Out.Info("Found differing address.")
			settings := j.EmailSettings()
			if !settings.Enabled {
				j.Out.Info("Skipping email because email_enabled == False.")
			} else {
				body := fmt.Sprintf("<html><pre>%s</pre></html>", ipcheck.AlertBody(result))
				if err := sendToRecipients(j, email.Gmail(j.Out), settings, ipcheck.AlertSubject, body); err != nil {
					return fail(j, "Email delivery failed", err)
				}
			}

			if topic := j.Config.String(notify.ConfigKey); topic != "" {
				notifier := notify.New(topic, 10*time.Second)
				if err := notifier.Publish(cmd.Context(), ipcheck.AlertSubject, ipcheck.AlertBody(result)); err != nil {
					j.Out.Warn("Could not post notification: " + err.Error())
				}
			}

			j.Finish(0)
			return nil
		},
	}

	flags.Register(cmd)
	flags.RegisterEmail(cmd)
	cmd.Flags().StringVar(&hostname, "hostname", "", "DNS hostname to compare IP address against")
	_ = cmd.MarkFlagRequired("hostname")

	return cmd
}
