package dirsize

import "fmt"

// Format renders a byte count the way the status line shows it. A trailing
// "+" marks partial results.
func Format(size int64, partial bool) string {
	s := human(size)
	if partial {
		return s + "+"
	}
	return s
}

func human(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
