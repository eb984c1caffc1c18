package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Operation names one of the supported arithmetic operations.
// The string value is the wire name used in settings files and storage.
type Operation string

const (
	Addition       Operation = "addition"
	Subtraction    Operation = "subtraction"
	Multiplication Operation = "multiplication"
	Division       Operation = "division"
)

// Operations lists every supported operation in display order.
var Operations = []Operation{Addition, Subtraction, Multiplication, Division}

// Operator is the per-operation capability set. Each operation owns its
// range table and its generation, hint and combination logic, so adding an
// operation means adding one Operator and registering it below.
type Operator interface {
	// Operation returns the operation this operator implements.
	Operation() Operation

	// Symbol is the infix symbol used in prompts and explanations.
	Symbol() string

	// Ranges returns the 10-level difficulty table.
	Ranges() [10]DifficultyRange

	// Generate draws operands for the given difficulty and range and
	// returns them along with the correct answer.
	Generate(r *rand.Rand, difficulty float64, rng DifficultyRange) (operands []float64, answer float64)

	// Hints returns 1-3 short hints for a generated question.
	Hints(operands []float64, answer float64) []string

	// Combine folds the operands left to right under this operation.
	Combine(operands []float64) float64
}

var operators = map[Operation]Operator{
	Addition:       additionOp{},
	Subtraction:    subtractionOp{},
	Multiplication: multiplicationOp{},
	Division:       divisionOp{},
}

// ParseOperation converts a wire name to an Operation.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := operators[op]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, name)
	}
	return op, nil
}

// OperatorFor returns the Operator for op.
func OperatorFor(op Operation) (Operator, error) {
	o, ok := operators[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, string(op))
	}
	return o, nil
}

// Valid reports whether op is a supported operation.
func (op Operation) Valid() bool {
	_, ok := operators[op]
	return ok
}

// OperationNames returns the wire names of all supported operations.
func OperationNames() []string {
	names := make([]string, len(Operations))
	for i, op := range Operations {
		names[i] = string(op)
	}
	return names
}
