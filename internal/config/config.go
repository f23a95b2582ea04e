package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the config file name inside a tool's dot-directory.
const FileName = "config.json"

// KeyLastRun is the document key stamped on every non-read-only Finish.
const KeyLastRun = "lastRunDateTime"

// Document is a free-form JSON-compatible configuration mapping.
type Document map[string]any

// Defaults returns the in-memory document used before any file is read.
func Defaults() Document {
	return Document{KeyLastRun: nil}
}

// ParseError reports a malformed config file together with its raw content
// so callers can log the content before surfacing the failure.
type ParseError struct {
	Path    string
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ResolvePath determines the config file location: the explicit flag value
// when given, otherwise config.json inside the tool's dot-directory.
func ResolvePath(flagValue, toolName string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return ExpandPath(flagValue)
	}
	dir, err := ToolDir(toolName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads a config document from path and merges it over Defaults.
// A missing file yields (Defaults(), false, nil); a malformed file yields a
// *ParseError and no partial document.
func Load(path string) (Document, bool, error) {
	doc := Defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, false, nil
		}
		return nil, false, fmt.Errorf("read config: %w", err)
	}

	var loaded Document
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, true, &ParseError{Path: path, Content: string(raw), Err: err}
	}

	Merge(doc, loaded)
	return doc, true, nil
}

// Merge copies every key of src into dst, overwriting existing values.
func Merge(dst, src Document) {
	for key, value := range src {
		dst[key] = value
	}
}

// LastRun returns the decoded lastRunDateTime record, or false when the
// document has never been stamped.
func (d Document) LastRun() (DateTime, bool) {
	return DateTimeFromValue(d[KeyLastRun])
}

// StampLastRun records the current time under KeyLastRun.
func (d Document) StampLastRun() {
	d[KeyLastRun] = Now()
}

// Save writes the document to path as pretty-printed, key-sorted JSON with
// trailing whitespace trimmed per line and a trailing newline.
func Save(path string, doc Document) error {
	content, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	var builder strings.Builder
	for _, line := range strings.Split(string(content), "\n") {
		builder.WriteString(strings.TrimRight(line, " \t"))
		builder.WriteByte('\n')
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// String is a convenience accessor returning the value under key as a
// string, or "" when absent or not a string.
func (d Document) String(key string) string {
	value, _ := d[key].(string)
	return value
}

// Bool returns the value under key as a bool, with ok reporting whether the
// key held a boolean at all.
func (d Document) Bool(key string) (bool, bool) {
	value, ok := d[key].(bool)
	return value, ok
}
