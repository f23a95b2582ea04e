package logging_test

import (
	"testing"

	"jobkit/internal/logging"
)

func TestBytesLabel(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0.0 B"},
		{512, "512.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
		{1125899906842624, "1.0 PB"},
		{1125899906842624 * 2048, "2048.0 PB"},
	}
	for _, tc := range cases {
		if got := logging.BytesLabel(tc.size); got != tc.want {
			t.Errorf("BytesLabel(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
