package logging

import "fmt"

// BytesLabel renders a byte count as a short human-readable label, one
// decimal place, 1024-based units up to petabytes.
func BytesLabel(size int64) string {
	value := float64(size)
	suffix := "B"
	for _, next := range []string{"KB", "MB", "GB", "TB", "PB"} {
		if value < 1024 {
			break
		}
		value /= 1024
		suffix = next
	}
	return fmt.Sprintf("%.1f %s", value, suffix)
}
