package main

import (
	"fmt"

	"jobkit/internal/email"
	"jobkit/internal/job"
)

// fail logs the fault with its stack through the job's logger and hands
// the error back to cobra. The job is deliberately not finished: a failed
// run must not stamp lastRunDateTime.
func fail(j *job.Job, heading string, err error) error {
	j.Out.DumpFault(heading, err)
	return err
}

// sendToRecipients mails one message per configured recipient, with an
// indent scope around each delivery.
func sendToRecipients(j *job.Job, sender *email.Sender, settings job.EmailSettings, subject, body string, attachments ...string) error {
	for _, recipient := range settings.Recipients() {
		scope := j.Out.Enter(fmt.Sprintf("Sending an email to %s...", recipient))
		err := sender.SendMessage(settings.From, settings.Password, recipient, subject, body, attachments...)
		scope.Close()
		if err != nil {
			return fmt.Errorf("send to %s: %w", recipient, err)
		}
	}
	return nil
}
