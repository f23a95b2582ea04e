package logging

import "strings"

// IndentUnit is the marker repeated once per depth level.
const IndentUnit = "| "

// Indent holds the indentation depth shared between logger handles.
// It is not safe for concurrent use; jobs run a single goroutine of control.
type Indent struct {
	depth int
	unit  string
}

// NewIndent returns a fresh zero-depth indent using IndentUnit.
func NewIndent() *Indent {
	return &Indent{unit: IndentUnit}
}

// Enter increments the depth by one.
func (i *Indent) Enter() { i.depth++ }

// Leave decrements the depth by one, floored at zero.
func (i *Indent) Leave() {
	if i.depth > 0 {
		i.depth--
	}
}

// Depth reports the current nesting level.
func (i *Indent) Depth() int { return i.depth }

// Prefix returns the indent unit repeated depth times.
func (i *Indent) Prefix() string {
	if i.depth == 0 {
		return ""
	}
	return strings.Repeat(i.unit, i.depth)
}

// Scope restores the prior depth when released. Close decrements exactly
// once no matter how often it is called, so `defer scope.Close()` keeps the
// depth balanced even when the enclosed work fails.
type Scope struct {
	indent   *Indent
	released bool
}

// Close releases the scope, decrementing the shared depth once.
func (s *Scope) Close() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.indent.Leave()
}
