// Package logging provides the indentation-aware logger shared by every job.
//
// Each distinct logger name owns exactly two sinks: a console sink whose
// minimum level can be raised or lowered at runtime, and a file sink under
// the tool's dot-directory that always records at debug. Sinks are installed
// on first construction for a name and reused by later constructions, so
// helper objects can create their own handles without duplicating output.
//
// Indentation depth lives in an explicit Indent value passed to every logger
// at construction; handles sharing an Indent nest consistently. The depth is
// a plain counter intended for a single goroutine of control.
package logging
