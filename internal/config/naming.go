package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	acronymRun  = regexp.MustCompile(`(.)([A-Z][A-Z]+)`)
	lowerUpper  = regexp.MustCompile(`([a-z0-9])([A-Z][a-z])`)
	trailingCap = regexp.MustCompile(`([a-z0-9])([A-Z])$`)
)

// CamelToSnake converts a display name like "Ip Checker" or "StatusReporter"
// to its snake_case directory form ("ip_checker", "status_reporter").
// Acronym runs stay grouped: "MiddleACRONYMSHere" keeps ACRONYMS together.
func CamelToSnake(name string) string {
	s := acronymRun.ReplaceAllString(name, "${1}_${2}")
	s = lowerUpper.ReplaceAllString(s, "${1}_${2}")
	s = lowerUpper.ReplaceAllString(s, "${1}_${2}")
	s = trailingCap.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "__", "_")
	return strings.ToLower(s)
}

// ToolDir returns the per-tool dot-directory path, e.g. ~/.ip_checker.
func ToolDir(name string) (string, error) {
	return ExpandPath("~/." + CamelToSnake(name))
}

// ExpandPath resolves a leading tilde and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
