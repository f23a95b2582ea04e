// Package config loads, merges, and persists per-tool JSON configuration.
//
// Every tool owns a dot-directory under the user's home (derived from the
// tool name, e.g. "Ip Checker" -> ~/.ip_checker) holding config.json and the
// log file. Documents are free-form string-keyed mappings that always carry a
// lastRunDateTime record stamped on successful completion.
//
// Load surfaces malformed files as a ParseError carrying the raw file
// content so callers can log it before failing; a missing file is not an
// error unless the caller demands one.
package config
