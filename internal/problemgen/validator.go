package problemgen

import "fmt"

// Validator is one step of the post-generation check chain. Validators
// hold no state and may be shared between generators.
type Validator interface {
	// Name identifies the validator in errors, e.g. "structural".
	Name() string

	// Validate returns nil when q passes.
	Validate(q *Question) *ValidationError
}

// ValidationError reports the first failed check for a generated question.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question rejected by %s: %s", e.Validator, e.Message)
}
