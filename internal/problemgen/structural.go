package problemgen

// StructuralValidator checks that required fields are present and within
// bounds.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if !q.Operation.Valid() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "unknown operation " + string(q.Operation),
		}
	}
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
		}
	}
	if len(q.Operands) < 2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question needs at least two operands",
		}
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be between 1 and 10",
		}
	}
	if len(q.Hints) < 1 || len(q.Hints) > 3 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question must carry 1 to 3 hints",
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
		}
	}
	return nil
}
