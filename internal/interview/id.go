package interview

import (
	"fmt"
	"strconv"
	"strings"
)

const idPrefix = "IR"

// NextID returns the identifier following the largest IRnnn id in existing.
// Ids that do not follow the pattern are ignored. Sequences past 999 are not truncated, so IR1000
// follows IR999.
func NextID(existing []string) string {
	highest := 0
	for _, id := range existing {
		if n, ok := parseID(id); ok && n > highest {
			highest = n
		}
	}
	return formatID(highest + 1)
}

func formatID(n int) string {
	return fmt.Sprintf("%s%03d", idPrefix, n)
}

func parseID(id string) (int, bool) {
	suffix, ok := strings.CutPrefix(strings.TrimSpace(id), idPrefix)
	if !ok || len(suffix) < 3 {
		return 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}
