package cooldown

import (
	"fmt"
	"strings"
)

// FormatClock renders whole seconds as "Xh Ym", always showing both units.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// FormatCompact renders whole seconds as "Xh Ym Zs", dropping zero hours and
// minutes. Seconds are always shown.
func FormatCompact(seconds int) string {
	seconds = max(seconds, 0)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds%60))
	return strings.Join(parts, " ")
}
