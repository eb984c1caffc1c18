package problemgen

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type multiplicationOp struct{}

func (multiplicationOp) Operation() Operation        { return Multiplication }
func (multiplicationOp) Symbol() string              { return "×" }
func (multiplicationOp) Ranges() [10]DifficultyRange { return multiplicationRanges }

func (multiplicationOp) Combine(operands []float64) float64 {
	product := 1.0
	for _, o := range operands {
		product *= o
	}
	return product
}

// timesTableMax is the largest factor drilled at low difficulty.
const timesTableMax = 12

// Generate focuses on the times tables up to difficulty 4. Above that the
// second factor is drawn from [Min, first/2] to keep products bounded, so the
// first factor starts at 2*Min whenever the range allows it.
func (m multiplicationOp) Generate(r *rand.Rand, difficulty float64, rng DifficultyRange) ([]float64, float64) {
	var num1, num2 int
	if difficulty <= 4 {
		hi := min(timesTableMax, rng.Max)
		num1 = intBetween(r, 1, hi)
		num2 = intBetween(r, 1, hi)
	} else {
		lo := rng.Min
		if 2*rng.Min <= rng.Max {
			lo = 2 * rng.Min
		}
		num1 = intBetween(r, lo, rng.Max)
		num2 = intBetween(r, rng.Min, min(rng.Max, int(math.Floor(float64(num1)*0.5))))
	}
	operands := []float64{float64(num1), float64(num2)}
	return operands, m.Combine(operands)
}

func (multiplicationOp) Hints(operands []float64, _ float64) []string {
	a, b := int(operands[0]), int(operands[1])
	var hints []string

	if a == b {
		hints = append(hints, fmt.Sprintf("This is a square: %d × %d is %d squared.", a, a, a))
	}
	if a <= timesTableMax && b <= timesTableMax {
		hints = append(hints, fmt.Sprintf("This is in the %d times table.", max(a, b)))
	}
	switch {
	case a%10 == 0 || b%10 == 0:
		hints = append(hints, "One factor is a multiple of ten: multiply without the zero, then put it back on the end.")
	case a == 1 || b == 1:
		hints = append(hints, "Anything times one is itself.")
	case b > timesTableMax:
		hints = append(hints, fmt.Sprintf("Split %d into tens and ones: %d × %d plus %d × %d.", b, a, b-b%10, a, b%10))
	case a > timesTableMax:
		hints = append(hints, fmt.Sprintf("Split %d into tens and ones: %d × %d plus %d × %d.", a, a-a%10, b, a%10, b))
	}
	if len(hints) == 0 {
		hints = append(hints, "Think of multiplication as repeated addition.")
	}
	return capHints(hints)
}
