package sysinfo

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatUptime renders d as "Xd Yh Zm", dropping leading zero units.
func FormatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	days := secs / 86400
	hours := secs % 86400 / 3600
	minutes := secs % 3600 / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatUsage renders "used / total (p.p%)" with IEC sizes.
func FormatUsage(used, total uint64) string {
	pct := 0.0
	if total > 0 {
		pct = float64(used) / float64(total) * 100
	}
	return fmt.Sprintf("%s / %s (%.1f%%)", humanize.IBytes(used), humanize.IBytes(total), pct)
}

// FormatPackages renders a package count with the manager that reported it.
func FormatPackages(n int, manager string) string {
	return fmt.Sprintf("%s (%s)", humanize.Comma(int64(n)), manager)
}
