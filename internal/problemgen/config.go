package problemgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// question. They execute in order; the first failure stops the
	// pipeline.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
		},
	}
}
