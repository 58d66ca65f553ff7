// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "time"

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	if n == -9223372036854775808 { // math.MinInt64
		return "-9223372036854775808"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// formatDuration renders a compile duration as "850ms" or "1.2s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return toStr(int(d/time.Millisecond)) + "ms"
	}
	tenths := int((d + 50*time.Millisecond) / (100 * time.Millisecond))
	return toStr(tenths/10) + "." + toStr(tenths%10) + "s"
}
