package problemgen

import (
	"fmt"
	"math/rand/v2"
)

type divisionOp struct{}

func (divisionOp) Operation() Operation        { return Division }
func (divisionOp) Symbol() string              { return "÷" }
func (divisionOp) Ranges() [10]DifficultyRange { return divisionRanges }

func (divisionOp) Combine(operands []float64) float64 {
	result := operands[0]
	for _, o := range operands[1:] {
		result /= o
	}
	return result
}

// divisorBounds widens the divisor range as difficulty crosses 3 and 6.
func divisorBounds(difficulty float64) (lo, hi int) {
	switch {
	case difficulty < 3:
		return 2, 12
	case difficulty < 6:
		return 2, 25
	default:
		return 2, 50
	}
}

// Generate picks a divisor and quotient whose product fits the range, so
// the question divides exactly. From difficulty 9, 30% of questions carry
// a remainder, but only when the range declares decimal places; otherwise
// the remainder roll is discarded and the exact question is returned.
func (d divisionOp) Generate(r *rand.Rand, difficulty float64, rng DifficultyRange) ([]float64, float64) {
	lo, hi := divisorBounds(difficulty)
	hi = min(hi, max(lo, rng.Max/2))
	divisor := intBetween(r, lo, hi)

	qLo := max(1, (rng.Min+divisor-1)/divisor)
	qHi := max(qLo, rng.Max/divisor)
	quotient := intBetween(r, qLo, qHi)
	dividend := divisor * quotient

	if difficulty >= 9 && r.Float64() < 0.3 {
		remainder := intBetween(r, 1, divisor-1)
		if rng.SupportsDecimals() {
			withRemainder := dividend + remainder
			answer := roundTo(float64(withRemainder)/float64(divisor), 2)
			return []float64{float64(withRemainder), float64(divisor)}, answer
		}
	}

	return []float64{float64(dividend), float64(divisor)}, float64(quotient)
}

func (divisionOp) Hints(operands []float64, answer float64) []string {
	a, b := operands[0], operands[1]
	var hints []string

	hints = append(hints, fmt.Sprintf("Think of multiplication: what times %s makes %s?", FormatNumber(b), FormatNumber(a)))
	if b <= timesTableMax {
		hints = append(hints, fmt.Sprintf("Use the %s times table and count how many %ss fit into %s.", FormatNumber(b), FormatNumber(b), FormatNumber(a)))
	} else if int(b)%10 == 0 {
		hints = append(hints, "The divisor is a multiple of ten: divide by ten first, then by what is left.")
	}
	if !isWhole(answer) {
		hints = append(hints, fmt.Sprintf("%s does not divide %s evenly: give the answer to 2 decimal places.", FormatNumber(b), FormatNumber(a)))
	}
	return capHints(hints)
}
