package problemgen

import "fmt"

// MathCheckValidator independently recomputes the answer from the operands
// and compares it with the stored answer.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	o, err := OperatorFor(q.Operation)
	if err != nil || len(q.Operands) < 2 {
		// Structural problems are reported by StructuralValidator.
		return nil
	}
	computed := o.Combine(q.Operands)
	if q.Operation == Division && !isWhole(q.Answer) {
		computed = roundTo(computed, 2)
	}
	if !ValidateAnswer(q, computed, DefaultTolerance) {
		return &ValidationError{
			Validator: v.Name(),
			Message: fmt.Sprintf("operands compute to %s but answer is %s",
				FormatNumber(computed), FormatNumber(q.Answer)),
		}
	}
	return nil
}
