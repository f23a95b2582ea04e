package job

import (
	"github.com/spf13/cobra"
)

// Flags declares the common command-line surface shared by every script.
// Script-specific flags are added to the cobra command by the caller before
// parsing; parsing happens exactly once, when cobra runs the command.
type Flags struct {
	Verbose    bool
	ConfigFile string

	EmailFrom     string
	EmailPassword string
	EmailTo       string

	emailRegistered bool
}

// NewFlags returns an empty flag set.
func NewFlags() *Flags {
	return &Flags{}
}

// Register declares the base flags on cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose messaging")
	cmd.Flags().StringVarP(&f.ConfigFile, "config-file", "c", "",
		"Name of the config file to use (default: ~/.<tool>/config.json)")
}

// RegisterEmail declares the email credential flags for email-capable
// scripts.
func (f *Flags) RegisterEmail(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.EmailFrom, "email-from", "f", "", "Email address to send from")
	cmd.Flags().StringVarP(&f.EmailPassword, "email-password", "p", "", "Email server password")
	cmd.Flags().StringVarP(&f.EmailTo, "email-to", "t", "", "Email address to send to")
	f.emailRegistered = true
}

// Arguments is the merged mapping of parsed flag values, immutable by
// convention after Start.
type Arguments map[string]any

// String returns the value under key as a string, or "" when absent.
func (a Arguments) String(key string) string {
	value, _ := a[key].(string)
	return value
}

// Bool returns the value under key as a bool, or false when absent.
func (a Arguments) Bool(key string) bool {
	value, _ := a[key].(bool)
	return value
}

func (f *Flags) arguments() Arguments {
	args := Arguments{
		"verbose":     f.Verbose,
		"config_file": f.ConfigFile,
	}
	if f.emailRegistered {
		args["email_from"] = f.EmailFrom
		args["email_password"] = f.EmailPassword
		args["email_to"] = f.EmailTo
	}
	return args
}
