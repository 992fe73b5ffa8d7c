package track

import (
	"fmt"
	"strings"
)

const barLength = 25

// ProgressBar renders a fixed-width bar: |██████░░...| 24.0%
func ProgressBar(current, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(current) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * barLength)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barLength-filled)
	return fmt.Sprintf("|%s| %5.1f%%", bar, pct*100)
}
