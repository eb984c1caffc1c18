package problemgen

import (
	"fmt"
	"math/rand/v2"
)

type additionOp struct{}

func (additionOp) Operation() Operation        { return Addition }
func (additionOp) Symbol() string              { return "+" }
func (additionOp) Ranges() [10]DifficultyRange { return additionRanges }

func (additionOp) Combine(operands []float64) float64 {
	var sum float64
	for _, o := range operands {
		sum += o
	}
	return sum
}

// Generate draws two addends, or three with 30% probability from
// difficulty 6 upward.
func (a additionOp) Generate(r *rand.Rand, difficulty float64, rng DifficultyRange) ([]float64, float64) {
	count := 2
	if difficulty >= 6 && r.Float64() < 0.3 {
		count = 3
	}
	operands := make([]float64, count)
	for i := range operands {
		operands[i] = float64(intBetween(r, rng.Min, rng.Max))
	}
	return operands, a.Combine(operands)
}

func (additionOp) Hints(operands []float64, _ float64) []string {
	var hints []string

	allTens := true
	anyLarge := false
	for _, o := range operands {
		if int(o)%10 != 0 {
			allTens = false
		}
		if o >= 10 {
			anyLarge = true
		}
	}

	if len(operands) == 2 && operands[0] == operands[1] {
		hints = append(hints, fmt.Sprintf("Doubles: %s + %s is the same as 2 × %s.",
			FormatNumber(operands[0]), FormatNumber(operands[1]), FormatNumber(operands[0])))
	}
	if allTens {
		hints = append(hints, "All the numbers are multiples of ten: add the tens, then put the zero back.")
	} else if anyLarge {
		a := int(operands[0])
		hints = append(hints, fmt.Sprintf("Break the numbers into tens and ones: %d is %d tens and %d ones.", a, a/10, a%10))
	}
	if len(operands) == 2 {
		small, large := operands[0], operands[1]
		if small > large {
			small, large = large, small
		}
		if small <= 10 {
			hints = append(hints, fmt.Sprintf("Start at %s and count up %s.", FormatNumber(large), FormatNumber(small)))
		}
	} else {
		hints = append(hints, "Add the first two numbers, then add the third to that total.")
	}
	if len(hints) == 0 {
		hints = append(hints, "Add the ones column first, then the tens, carrying when a column passes 9.")
	}
	return capHints(hints)
}
