package problemgen

import "math"

// DifficultyRange bounds the operands drawn at one difficulty level.
type DifficultyRange struct {
	Min int
	Max int

	// DecimalPlaces is the number of decimal places answers at this level
	// may carry. Zero means answers are whole numbers.
	DecimalPlaces int

	// AllowNegatives permits questions whose answer is negative.
	AllowNegatives bool
}

// SupportsDecimals reports whether the range declares decimal places.
func (r DifficultyRange) SupportsDecimals() bool {
	return r.DecimalPlaces > 0
}

const (
	MinDifficulty = 1.0
	MaxDifficulty = 10.0
)

var additionRanges = [10]DifficultyRange{
	{Min: 1, Max: 9},
	{Min: 1, Max: 20},
	{Min: 1, Max: 50},
	{Min: 1, Max: 100},
	{Min: 10, Max: 200},
	{Min: 50, Max: 500},
	{Min: 100, Max: 1000},
	{Min: 500, Max: 5000},
	{Min: 1000, Max: 10000},
	{Min: 5000, Max: 50000},
}

var subtractionRanges = [10]DifficultyRange{
	{Min: 1, Max: 10},
	{Min: 1, Max: 20},
	{Min: 5, Max: 50},
	{Min: 10, Max: 100},
	{Min: 20, Max: 200},
	{Min: 50, Max: 500, AllowNegatives: true},
	{Min: 100, Max: 1000, AllowNegatives: true},
	{Min: 500, Max: 5000, AllowNegatives: true},
	{Min: 1000, Max: 10000, AllowNegatives: true},
	{Min: 5000, Max: 50000, AllowNegatives: true},
}

var multiplicationRanges = [10]DifficultyRange{
	{Min: 1, Max: 5},
	{Min: 1, Max: 10},
	{Min: 2, Max: 12},
	{Min: 5, Max: 15},
	{Min: 10, Max: 25},
	{Min: 10, Max: 50},
	{Min: 25, Max: 100},
	{Min: 50, Max: 200, DecimalPlaces: 1},
	{Min: 100, Max: 500, DecimalPlaces: 2},
	{Min: 200, Max: 1000, DecimalPlaces: 2},
}

var divisionRanges = [10]DifficultyRange{
	{Min: 1, Max: 25},
	{Min: 1, Max: 50},
	{Min: 1, Max: 100},
	{Min: 10, Max: 200},
	{Min: 20, Max: 500},
	{Min: 50, Max: 1000},
	{Min: 100, Max: 2000},
	{Min: 200, Max: 5000, DecimalPlaces: 1},
	{Min: 500, Max: 10000, DecimalPlaces: 2},
	{Min: 1000, Max: 50000, DecimalPlaces: 2},
}

// rangeIndex maps a difficulty to a table index: floor(d)-1 clamped to [0, 9].
func rangeIndex(difficulty float64) int {
	idx := int(math.Floor(difficulty)) - 1
	if idx < 0 {
		return 0
	}
	if idx > 9 {
		return 9
	}
	return idx
}

// RangeFor returns the operand range for op at the given difficulty.
func RangeFor(op Operation, difficulty float64) (DifficultyRange, error) {
	o, err := OperatorFor(op)
	if err != nil {
		return DifficultyRange{}, err
	}
	return o.Ranges()[rangeIndex(difficulty)], nil
}
