package config

import (
	"fmt"
	"time"
)

// DateTime is the minute-precision timestamp recorded under lastRunDateTime.
// Seconds are dropped so successive cron runs diff cleanly.
type DateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Now captures the current local time at minute precision.
func Now() DateTime {
	t := time.Now()
	return DateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// String renders the record as "YYYY-MM-DD HH:MM".
func (d DateTime) String() string {
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

// DateTimeFromValue decodes a DateTime from a JSON-decoded value
// (a map of numbers, as produced by round-tripping a Document).
func DateTimeFromValue(value any) (DateTime, bool) {
	fields, ok := value.(map[string]any)
	if !ok {
		return DateTime{}, false
	}
	dt := DateTime{}
	for key, dst := range map[string]*int{
		"year":   &dt.Year,
		"month":  &dt.Month,
		"day":    &dt.Day,
		"hour":   &dt.Hour,
		"minute": &dt.Minute,
	} {
		num, ok := fields[key].(float64)
		if !ok {
			return DateTime{}, false
		}
		*dst = int(num)
	}
	return dt, true
}
