package srs

import (
	"math"
	"time"
)

// Review reward parameters. Fixed product constants, not tunables.
const (
	baseReviewXP       = 25
	overduePerDayBonus = 0.1
	maxOverdueBonus    = 2.0
)

// DaysOverdue returns how many whole days past its scheduled review an item
// is at the given moment, never negative.
func DaysOverdue(nextReview, now time.Time) int {
	if !now.After(nextReview) {
		return 0
	}
	return int(now.Sub(nextReview).Hours() / 24)
}

// ReviewXP prices the reward for a correct review. Harder items (lower ease
// factor) and more-overdue items pay more, both bounded: the difficulty
// multiplier is max(1, 3-EF) and the overdue bonus tops out at +200%.
//
// The ease factor passed in is the one the item had before this review's
// update; the reward prices the difficulty the learner actually faced.
func ReviewXP(easeFactor float64, daysOverdue int) int {
	difficulty := 3 - easeFactor
	if difficulty < 1 {
		difficulty = 1
	}

	overdueBonus := float64(daysOverdue) * overduePerDayBonus
	if overdueBonus > maxOverdueBonus {
		overdueBonus = maxOverdueBonus
	}

	return int(math.Round(baseReviewXP * difficulty * (1 + overdueBonus)))
}
