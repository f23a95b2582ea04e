package logging

import (
	"fmt"
	"reflect"
	"strings"
)

// Lines normalizes the accepted message shapes into an ordered slice of
// single lines: a string splits on line breaks, a slice converts each item
// to text, anything else becomes one line via fmt.Sprint. An empty string
// yields no lines at all.
func Lines(msg any) []string {
	switch v := msg.(type) {
	case nil:
		return nil
	case string:
		return splitLines(v)
	case []string:
		var out []string
		for _, item := range v {
			out = append(out, splitLines(item)...)
		}
		return out
	case error:
		return splitLines(v.Error())
	case fmt.Stringer:
		return splitLines(v.String())
	}

	rv := reflect.ValueOf(msg)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		var out []string
		for i := 0; i < rv.Len(); i++ {
			out = append(out, splitLines(fmt.Sprint(rv.Index(i).Interface()))...)
		}
		return out
	}

	return splitLines(fmt.Sprint(msg))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
