package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable size in IEC units (B, KiB, MiB, ...).
// Negative sizes are formatted by magnitude with a leading minus.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatRatio formats a compression ratio percentage with one decimal
// (e.g. "60.0%").
func FormatRatio(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
