package srs

// MasteryLevel derives the 0-5 mastery scale from the spaced-repetition
// triple. It is a pure, monotone function of (repetitions, ease factor,
// interval): once a skill qualifies for a level it cannot drop below it
// without the underlying triple regressing.
//
// The top levels require all three signals at once - many repetitions, a
// long interval, and a healthy ease factor - so a skill crammed in a single
// session cannot read as mastered.
func MasteryLevel(repetitions int, ef float64, intervalDays int) int {
	switch {
	case repetitions == 0:
		return 0
	case repetitions == 1:
		return 1
	case repetitions >= 7 && intervalDays >= 60 && ef >= 2.2:
		return 5
	case repetitions >= 5 && intervalDays >= 30 && ef >= 2.0:
		return 4
	case repetitions >= 3 && intervalDays >= 14 && ef >= 1.8:
		return 3
	case repetitions >= 2 && intervalDays >= 6:
		return 2
	default:
		if repetitions < 2 {
			return repetitions
		}
		return 2
	}
}
