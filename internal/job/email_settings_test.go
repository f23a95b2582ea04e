package job_test

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"jobkit/internal/config"
	"jobkit/internal/job"
	"jobkit/internal/testsupport"
)

func startedJob(t *testing.T, name string, seed config.Document) (*job.Job, func() string) {
	t.Helper()
	home := testsupport.TempHome(t)
	if seed != nil {
		dir := filepath.Join(home, "."+config.CamelToSnake(name))
		if err := config.Save(filepath.Join(dir, config.FileName), seed); err != nil {
			t.Fatal(err)
		}
	}
	logOpts, console := testsupport.LoggerOptions(t)
	j, err := job.New(name,
		job.WithLoggerOptions(logOpts),
		job.WithHistoryPath(filepath.Join(t.TempDir(), "history.db")),
		job.WithExit((&testsupport.ExitRecorder{}).Func()),
	)
	if err != nil {
		t.Fatalf("job.New: %v", err)
	}
	if err := j.Start(true); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return j, console.String
}

func TestEmailSettingsDisabledWhenPasswordMissing(t *testing.T) {
	j, console := startedJob(t, "Email Missing Password", config.Document{
		"email_from": "sender@example.com",
		"email_to":   "dest@example.com",
	})

	settings := j.EmailSettings()
	if settings.Enabled {
		t.Fatal("email should be disabled when a field is missing")
	}
	if !strings.Contains(console(), "no parameter or config value was given for email_password") {
		t.Fatalf("missing-field warning absent: %q", console())
	}
}

func TestEmailSettingsMergesConfigValues(t *testing.T) {
	j, _ := startedJob(t, "Email From Config", config.Document{
		"email_from":     "sender@example.com",
		"email_to":       "a@example.com, b@example.com",
		"email_password": "hunter2",
	})

	settings := j.EmailSettings()
	if !settings.Enabled {
		t.Fatal("all fields present; email should be enabled")
	}
	recipients := settings.Recipients()
	if len(recipients) != 2 || recipients[0] != "a@example.com" || recipients[1] != "b@example.com" {
		t.Fatalf("unexpected recipients: %v", recipients)
	}
}

func TestEmailSettingsHonoursEnabledFalse(t *testing.T) {
	j, _ := startedJob(t, "Email Opted Out", config.Document{
		"email_from":     "sender@example.com",
		"email_to":       "dest@example.com",
		"email_password": "hunter2",
		"email_enabled":  false,
	})

	if settings := j.EmailSettings(); settings.Enabled {
		t.Fatal("email_enabled=false should win when all fields are present")
	}
}

func TestEmailSettingsNeverLogsPassword(t *testing.T) {
	j, console := startedJob(t, "Email Redaction", config.Document{
		"email_from":     "sender@example.com",
		"email_to":       "dest@example.com",
		"email_password": "super-secret-value",
	})
	j.Out.SetConsoleLevel(slog.LevelDebug)

	j.EmailSettings()
	if strings.Contains(console(), "super-secret-value") {
		t.Fatal("password leaked into log output")
	}
}
