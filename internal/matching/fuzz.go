package matching

import (
	"math"
	"sort"
	"strings"
)

// TokenSortRatio compares two strings regardless of word order.
// Both inputs are split on whitespace, the tokens sorted and re-joined, and the results
// compared with Ratio.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// Ratio returns the normalised InDel similarity of a and b in [0,100].
// InDel distance counts insertions and deletions only, so a substitution costs two edits.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}

	dist := total - 2*lcsLength(ra, rb)
	return 100 * (1 - float64(dist)/float64(total))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcsLength computes the longest common subsequence with two rolling rows.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	row := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				row[j] = prev[j-1] + 1
				continue
			}
			row[j] = max(row[j-1], prev[j])
		}
		row, prev = prev, row
	}

	return prev[len(b)]
}

func roundScore(v float64) int {
	return int(math.Round(v))
}
