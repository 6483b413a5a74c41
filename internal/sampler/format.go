package sampler

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/hibou/internal/delta"
)

// NotAvailable is shown in place of a value that could not be computed.
const NotAvailable = "n/a"

// FormatPercent formats a usage percentage, or NotAvailable when unknown.
func FormatPercent(v float64) string {
	if delta.IsUnknown(v) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSize formats a byte count in binary units, or NotAvailable for zero.
func FormatSize(bytes uint64) string {
	if bytes == 0 {
		return NotAvailable
	}
	return humanize.IBytes(bytes)
}

// FormatMbps formats a rate in Mb/s, or NotAvailable when unknown.
func FormatMbps(v float64) string {
	if delta.IsUnknown(v) {
		return NotAvailable
	}
	return fmt.Sprintf("%.4f Mb/s", v)
}
