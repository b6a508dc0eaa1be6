package health

import (
	"fmt"
	"strings"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60

	bytesPerMB = 1024 * 1024
)

// FormatUptime renders seconds as "1d 2h 3m 4s". Zero days, hours and
// minutes are omitted; seconds are always present.
func FormatUptime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)

	days := total / secondsPerDay
	hours := (total % secondsPerDay) / secondsPerHour
	minutes := (total % secondsPerHour) / secondsPerMinute
	secs := total % secondsPerMinute

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))

	return strings.Join(parts, " ")
}

// FormatBytes renders a byte count in mebibytes with two decimals, e.g. "1.50 MB".
func FormatBytes(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/bytesPerMB)
}
