package job

import (
	"encoding/json"
	"strings"
)

// EmailSettings is the derived email configuration for a script, merged
// from arguments over the config file.
type EmailSettings struct {
	Enabled  bool
	From     string
	Password string
	To       string
}

// Recipients splits the To field on commas, trimming whitespace.
func (s EmailSettings) Recipients() []string {
	var recipients []string
	for _, addr := range strings.Split(s.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// EmailSettings merges the email fields with precedence arguments > config
// file. Any missing field disables email and logs a warning naming it;
// otherwise email_enabled from the config file is honored (default true).
func (j *Job) EmailSettings() EmailSettings {
	settings := EmailSettings{}
	missing := false

	for _, field := range []struct {
		key string
		dst *string
	}{
		{"email_from", &settings.From},
		{"email_to", &settings.To},
		{"email_password", &settings.Password},
	} {
		value := j.Args.String(field.key)
		if value == "" {
			value = j.Config.String(field.key)
		}
		if value != "" {
			*field.dst = value
			continue
		}
		j.Out.Warn("Disabling email because no parameter or config value was given for " + field.key + ".")
		missing = true
	}

	if missing {
		settings.Enabled = false
	} else if enabled, ok := j.Config.Bool("email_enabled"); ok {
		settings.Enabled = enabled
	} else {
		settings.Enabled = true
	}

	j.debugEmailSettings(settings)
	return settings
}

func (j *Job) debugEmailSettings(settings EmailSettings) {
	password := ""
	if settings.Password != "" {
		password = "<redacted>"
	}
	summary, err := json.MarshalIndent(map[string]any{
		"email_enabled":  settings.Enabled,
		"email_from":     settings.From,
		"email_to":       settings.To,
		"email_password": password,
	}, "", "    ")
	if err != nil {
		return
	}
	j.Out.Debug("using email config: " + string(summary))
}
