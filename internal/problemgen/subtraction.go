package problemgen

import (
	"fmt"
	"math/rand/v2"
)

type subtractionOp struct{}

func (subtractionOp) Operation() Operation        { return Subtraction }
func (subtractionOp) Symbol() string              { return "-" }
func (subtractionOp) Ranges() [10]DifficultyRange { return subtractionRanges }

func (subtractionOp) Combine(operands []float64) float64 {
	result := operands[0]
	for _, o := range operands[1:] {
		result -= o
	}
	return result
}

// Generate keeps the subtrahend at or below the minuend so the answer is
// non-negative, except from difficulty 6 on ranges that allow negatives,
// where 40% of the time the subtrahend is drawn from the whole range.
func (s subtractionOp) Generate(r *rand.Rand, difficulty float64, rng DifficultyRange) ([]float64, float64) {
	num1 := intBetween(r, rng.Min, rng.Max)
	num2 := intBetween(r, rng.Min, num1)
	if rng.AllowNegatives && difficulty >= 6 && r.Float64() < 0.4 {
		num2 = intBetween(r, rng.Min, rng.Max)
	}
	operands := []float64{float64(num1), float64(num2)}
	return operands, s.Combine(operands)
}

func (subtractionOp) Hints(operands []float64, answer float64) []string {
	a, b := operands[0], operands[1]
	var hints []string

	switch {
	case answer < 0:
		hints = append(hints, fmt.Sprintf("%s is bigger than %s, so the answer is negative: work out %s - %s and put a minus sign in front.",
			FormatNumber(b), FormatNumber(a), FormatNumber(b), FormatNumber(a)))
	case answer <= 10:
		hints = append(hints, fmt.Sprintf("The numbers are close together: count up from %s to %s.", FormatNumber(b), FormatNumber(a)))
	case b <= 10:
		hints = append(hints, fmt.Sprintf("Count back %s from %s.", FormatNumber(b), FormatNumber(a)))
	}
	if b >= 10 {
		n := int(b)
		hints = append(hints, fmt.Sprintf("Take away the tens first (%d), then the ones (%d).", n-n%10, n%10))
	}
	if int(b)%10 == 0 && b != 0 && answer >= 0 {
		hints = append(hints, fmt.Sprintf("%s is a multiple of ten, so the ones digit of %s does not change.", FormatNumber(b), FormatNumber(a)))
	}
	if len(hints) == 0 {
		hints = append(hints, "Subtract the ones column first, borrowing from the tens if you need to.")
	}
	return capHints(hints)
}
