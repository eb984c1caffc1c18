package problemgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance is the accepted error for rounded division answers.
const DefaultTolerance = 0.01

// exactEpsilon absorbs floating-point noise when comparing whole answers.
const exactEpsilon = 0.001

// ValidateAnswer reports whether userAnswer is correct for q.
//
// Division questions whose answer is not a whole number accept any value
// within tolerance; callers pass DefaultTolerance for the usual rounding.
// A tolerance of zero or less demands the stored answer exactly. Every
// other question requires an exact match.
func ValidateAnswer(q *Question, userAnswer float64, tolerance float64) bool {
	tolerance = max(tolerance, 0)
	diff := math.Abs(q.Answer - userAnswer)
	if q.Operation == Division && !isWhole(q.Answer) {
		return diff <= tolerance
	}
	return diff < exactEpsilon
}

// ParseAnswer parses a learner's typed answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Thousands separators ("1,250") are removed
// - Leading zeros and trailing decimal zeros are ignored ("007", "3.50")
func ParseAnswer(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty answer")
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", input, err)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("invalid number %q", input)
	}
	return n, nil
}
