// Package email submits messages over authenticated, encrypted SMTP.
//
// Transport and authentication failures propagate to the caller; there is
// no retry policy. Two relay presets exist (Gmail and CronWorks) alongside
// fully custom hosts.
package email

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"jobkit/internal/logging"
)

// SubmissionPort is the implicit-TLS SMTP submission port.
const SubmissionPort = 465

// Relay hostnames for the two preset configurations. Both are kept; which
// provider is authoritative depends on the deployment.
const (
	GmailHost     = "smtp.gmail.com"
	CronWorksHost = "secure.emailsrvr.com"
)

// Sender transmits messages through a single fixed relay host.
type Sender struct {
	Host string

	out  *logging.Logger
	dial func(host string) (*smtp.Client, error)
}

// New constructs a Sender for an arbitrary relay host.
func New(out *logging.Logger, host string) *Sender {
	return &Sender{Host: host, out: out, dial: dialTLS}
}

// Gmail returns a Sender preconfigured for the Gmail relay.
func Gmail(out *logging.Logger) *Sender {
	return New(out, GmailHost)
}

// CronWorks returns a Sender preconfigured for the CronWorks relay.
func CronWorks(out *logging.Logger) *Sender {
	return New(out, CronWorksHost)
}

func dialTLS(host string) (*smtp.Client, error) {
	addr := net.JoinHostPort(host, fmt.Sprint(SubmissionPort))
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp handshake with %s: %w", host, err)
	}
	return client, nil
}

// SendMessage builds a multipart message (HTML body plus base64 file
// attachments) and transmits it, narrating each phase through the logger.
// Any transport or authentication failure is returned to the caller;
// nothing is retried.
func (s *Sender) SendMessage(sender, password, recipient, subject, body string, attachments ...string) error {
	message, err := buildMessage(sender, recipient, subject, body, attachments, time.Now())
	if err != nil {
		return err
	}

	s.out.Info("connecting...")
	client, err := s.dial(s.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	s.out.Info("logging in...")
	auth := smtp.PlainAuth("", sender, password, s.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authenticate as %s: %w", sender, err)
	}

	s.out.Info("sending...")
	if err := client.Mail(sender); err != nil {
		return fmt.Errorf("mail from %s: %w", sender, err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("rcpt to %s: %w", recipient, err)
	}
	payload, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data stream: %w", err)
	}
	if _, err := payload.Write(message); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := payload.Close(); err != nil {
		return fmt.Errorf("close data stream: %w", err)
	}
	if err := client.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	s.out.Info("done.")
	return nil
}
