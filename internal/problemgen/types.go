package problemgen

// Question is a generated arithmetic question ready for display.
type Question struct {
	// Text is the prompt shown to the learner, e.g. "What is 12 + 7?".
	Text string `json:"text"`

	// Answer is the correct answer. Whole for every operation except
	// division with a remainder, which is rounded to 2 decimal places.
	Answer float64 `json:"answer"`

	// Operands are the numbers in the order they appear in Text.
	// Always at least two.
	Operands []float64 `json:"operands"`

	Operation Operation `json:"operation"`

	// Difficulty is the resolved difficulty after performance adjustment,
	// in [1, 10] with one decimal place.
	Difficulty float64 `json:"difficulty"`

	// Hints holds 1-3 short strategy hints.
	Hints []string `json:"hints"`

	// Explanation is the one-line worked result, e.g. "12 + 7 = 19".
	Explanation string `json:"explanation"`
}

// RecentPerformance summarizes the learner's latest answers. It nudges the
// requested difficulty before a question is generated.
type RecentPerformance struct {
	// Total is the number of answers in the window.
	Total int
	// Accuracy is the percentage (0-100) of correct answers in the window.
	Accuracy float64
	// AverageTimeMs is the mean response time in milliseconds.
	AverageTimeMs float64
}

// Stats are the rolling statistics used to pick the next difficulty.
type Stats struct {
	Accuracy      float64 // percent, 0-100
	AverageTimeMs float64
	SessionCount  int // number of answers the stats were computed over
}
