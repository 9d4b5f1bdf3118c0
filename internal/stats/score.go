// Package stats computes daily scores and weekly aggregates from tracking
// records. All functions are pure.
package stats

import "math"

// DailyScore sums the numeric entries in a habit map and computes the
// completion percentage against the daily target. The percentage is not
// clamped; logging more than the target shows as > 100%.
func DailyScore(habits map[string]int, target int) (total int, percentage float64) {
	for _, mins := range habits {
		total += mins
	}
	if target > 0 {
		percentage = float64(total) / float64(target) * 100
	}
	return total, percentage
}

// Round2 rounds a percentage to two decimal places for display. Internal
// computations keep full precision.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
