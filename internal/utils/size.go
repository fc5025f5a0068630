package utils

import "fmt"

// FormatKilobytes renders a byte count as kilobytes with two decimal places,
// matching the summary lines printed by the digest renderers.
func FormatKilobytes(bytes int64) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}
