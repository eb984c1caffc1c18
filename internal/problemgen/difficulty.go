package problemgen

import "math"

// AdjustDifficulty nudges a requested difficulty using recent accuracy and
// response time. The result is clamped to [1, 10] and rounded to one
// decimal place. A nil perf leaves the difficulty unadjusted apart from
// clamping and rounding.
func AdjustDifficulty(difficulty float64, perf *RecentPerformance) float64 {
	if perf == nil {
		return clampDifficulty(difficulty)
	}

	acc := perf.Accuracy
	adj := 0.0
	switch {
	case perf.Total >= 5 && acc >= 90:
		adj = 0.3
	case perf.Total >= 5 && acc >= 80:
		adj = 0.1
	case perf.Total >= 3 && acc < 40:
		adj = -0.4
	case perf.Total >= 3 && acc < 60:
		adj = -0.2
	}

	switch {
	case perf.AverageTimeMs < 2000 && acc >= 85:
		adj += 0.2
	case perf.AverageTimeMs > 10000:
		adj -= 0.1
	}

	return clampDifficulty(difficulty + adj)
}

// NextDifficulty computes the difficulty for the next question from rolling
// stats. Fewer than 3 answers is not enough signal and returns current
// unchanged.
func NextDifficulty(current float64, stats Stats) float64 {
	if stats.SessionCount < 3 {
		return current
	}

	acc := stats.Accuracy
	adj := 0.0
	switch {
	case acc >= 95:
		adj = 0.5
	case acc >= 85:
		adj = 0.3
	case acc >= 75:
		adj = 0.1
	case acc < 60:
		adj = -0.3
	case acc < 70:
		adj = -0.1
	}

	switch {
	case stats.AverageTimeMs < 3000 && acc >= 80:
		adj += 0.2
	case stats.AverageTimeMs > 15000:
		adj -= 0.1
	}

	return clampDifficulty(current + adj)
}

// clampDifficulty bounds d to [1, 10] and rounds it to one decimal place.
func clampDifficulty(d float64) float64 {
	d = math.Max(MinDifficulty, math.Min(MaxDifficulty, d))
	return math.Round(d*10) / 10
}
