package problemgen

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Generator produces arithmetic questions. It owns its random source so a
// seeded Generator yields a reproducible question sequence.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	config Config
}

// New creates a Generator drawing from src.
func New(src rand.Source, cfg Config) *Generator {
	return &Generator{rng: rand.New(src), config: cfg}
}

// NewFromSeed creates a Generator with a PCG source seeded from seed.
func NewFromSeed(seed uint64, cfg Config) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), cfg)
}

// NewRandom creates a Generator seeded from the current time.
func NewRandom(cfg Config) *Generator {
	return NewFromSeed(uint64(time.Now().UnixNano()), cfg)
}

// Rand exposes the generator's random source for callers that need to make
// draws in the same reproducible stream, such as picking the operation.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Generate builds a question for op. The requested difficulty is first
// adjusted by prev (when non-nil) and then selects the operand range.
func (g *Generator) Generate(op Operation, difficulty float64, prev *RecentPerformance) (*Question, error) {
	o, err := OperatorFor(op)
	if err != nil {
		return nil, err
	}

	resolved := AdjustDifficulty(difficulty, prev)
	rng := o.Ranges()[rangeIndex(resolved)]
	operands, answer := o.Generate(g.rng, resolved, rng)

	q := &Question{
		Text:        promptText(o, operands),
		Answer:      answer,
		Operands:    operands,
		Operation:   op,
		Difficulty:  resolved,
		Hints:       o.Hints(operands, answer),
		Explanation: explanation(o, operands, answer),
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedQuestion, verr)
		}
	}
	return q, nil
}
