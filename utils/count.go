package utils

import (
	"fmt"
	"strconv"
)

// FormatCount renders an engagement counter the way the overlay displays it:
// 950 -> "950", 1500 -> "1.5K", 2000 -> "2K", 1234567 -> "1.2M". Negative
// input clamps to "0".
func FormatCount(count int) string {
	if count < 0 {
		return "0"
	}
	switch {
	case count >= 1_000_000_000:
		return formatScaled(count, 1_000_000_000, "B")
	case count >= 1_000_000:
		return formatScaled(count, 1_000_000, "M")
	case count >= 1_000:
		return formatScaled(count, 1_000, "K")
	default:
		return strconv.Itoa(count)
	}
}

// formatScaled truncates to one decimal and drops a trailing ".0".
func formatScaled(count, unit int, suffix string) string {
	tenths := count / (unit / 10)
	whole := tenths / 10
	fraction := tenths % 10
	if fraction == 0 {
		return fmt.Sprintf("%d%s", whole, suffix)
	}
	return fmt.Sprintf("%d.%d%s", whole, fraction, suffix)
}
