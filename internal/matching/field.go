package matching

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NumericTolerance is the largest relative difference for which two numbers still match.
const NumericTolerance = 0.30

// FieldScore compares two cell values and returns a similarity in [0,100].
//
// Blank values score 0. When both values are numbers they match only within
// NumericTolerance of the larger magnitude; everything else is compared as text
// with TokenSortRatio.
func FieldScore(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}

	if x, ok := parseNumber(a); ok {
		if y, ok := parseNumber(b); ok {
			return numericScore(x, y)
		}
	}

	return roundScore(TokenSortRatio(normalize(a), normalize(b)))
}

func numericScore(x, y float64) int {
	largest := math.Max(math.Abs(x), math.Abs(y))
	// 0 against 0 also lands here and scores 0.
	if largest == 0 {
		return 0
	}

	diff := math.Abs(x-y) / largest
	if diff > NumericTolerance {
		return 0
	}
	return roundScore(100 - diff*100)
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
