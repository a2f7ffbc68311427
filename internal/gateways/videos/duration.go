package videos

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// formatDuration turns an ISO 8601 video duration into the compact clock
// form players show: PT1H2M3S -> 1:02:03, PT4M5S -> 4:05, PT50S -> 0:50.
// Unparseable input comes back unchanged.
func formatDuration(iso string) string {
	m := isoDurationRe.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}

	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
