package problemgen

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// FormatNumber renders n without trailing zeros ("12", "3.67", "-4").
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// isWhole reports whether n has no fractional part.
func isWhole(n float64) bool {
	return n == math.Trunc(n)
}

// roundTo rounds n to the given number of decimal places.
func roundTo(n float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(n*p) / p
}

// intBetween draws an integer uniformly from [lo, hi]. When hi < lo it
// returns lo.
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// expression renders operands joined by the operator symbol: "12 + 7 + 3".
func expression(symbol string, operands []float64) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = FormatNumber(o)
	}
	return strings.Join(parts, " "+symbol+" ")
}

// promptText builds the question prompt shown to the learner.
func promptText(o Operator, operands []float64) string {
	return "What is " + expression(o.Symbol(), operands) + "?"
}

// explanation renders the one-line worked result. Division results that
// are not whole numbers are marked as rounded.
func explanation(o Operator, operands []float64, answer float64) string {
	line := expression(o.Symbol(), operands) + " = " + FormatNumber(answer)
	if o.Operation() == Division && !isWhole(answer) {
		line += " (rounded to 2 decimal places)"
	}
	return line
}

// capHints trims hints to at most three entries.
func capHints(hints []string) []string {
	if len(hints) > 3 {
		return hints[:3]
	}
	return hints
}
