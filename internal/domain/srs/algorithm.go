// Package srs implements the modified SM-2 spaced-repetition algorithm used
// to schedule skill reviews, derive mastery levels, and price review rewards.
//
// The modification relative to classic SM-2: an incorrect answer resets the
// repetition streak and interval but leaves the ease factor untouched, so a
// bad day never makes a skill permanently harder.
package srs

import (
	"math"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
)

// PassingQuality is the lowest quality grade counted as a correct answer.
const PassingQuality = 3

// MaxQuality is the highest accepted quality grade.
const MaxQuality = 5

// Intervals for the first two successful repetitions, in days.
const (
	firstInterval  = 1
	secondInterval = 6
)

// nextEaseFactor computes the updated ease factor after a correct answer.
//
// The adjustment is the standard SM-2 polynomial in (5 - quality): a perfect
// answer nudges the factor up by 0.1, while a barely-passing answer pulls it
// down. The result is floored at domain.MinEaseFactor so intervals always
// keep growing once a skill is established.
//
// Callers must not invoke this for failing grades; a miss leaves the ease
// factor unchanged.
func nextEaseFactor(ef float64, quality int) float64 {
	miss := float64(5 - quality)
	next := ef + (0.1 - miss*(0.08+miss*0.02))
	if next < domain.MinEaseFactor {
		next = domain.MinEaseFactor
	}
	return next
}

// nextInterval computes the next review interval in days after a correct
// answer, given the repetition count before this review.
//
//   - First success: 1 day.
//   - Second success: 6 days.
//   - Thereafter: the previous interval scaled by the ease factor, rounded
//     to the nearest day.
func nextInterval(interval, repetitions int, ef float64) int {
	switch repetitions {
	case 0:
		return firstInterval
	case 1:
		return secondInterval
	default:
		return int(math.Round(float64(interval) * ef))
	}
}

// Advance applies a submitted quality grade (0-5) to a review item and
// returns the item's next state, following the immutable update pattern:
// the input item is never modified.
//
// For a correct answer (quality >= PassingQuality) the repetition count
// increments, the interval grows per nextInterval, and the ease factor is
// adjusted. For an incorrect answer the repetition count and interval reset
// while the ease factor is preserved. Either way the next review is
// scheduled interval days from now and the mastery level is re-derived from
// the updated triple.
func Advance(item *domain.ReviewItem, quality int, now time.Time) (*domain.ReviewItem, error) {
	if quality < 0 || quality > MaxQuality {
		return nil, domain.ErrInvalidQuality
	}

	next := *item

	if quality >= PassingQuality {
		next.IntervalDays = nextInterval(item.IntervalDays, item.RepetitionCount, item.EaseFactor)
		next.EaseFactor = nextEaseFactor(item.EaseFactor, quality)
		next.RepetitionCount = item.RepetitionCount + 1
	} else {
		next.RepetitionCount = 0
		next.IntervalDays = firstInterval
		// Ease factor intentionally unchanged on a miss.
	}

	next.NextReview = now.AddDate(0, 0, next.IntervalDays)
	next.LastReviewedAt = now
	next.LastQuality = quality
	next.MasteryLevel = MasteryLevel(next.RepetitionCount, next.EaseFactor, next.IntervalDays)
	next.UpdatedAt = now

	return &next, nil
}

// IsCorrect reports whether a quality grade counts as a correct answer.
func IsCorrect(quality int) bool {
	return quality >= PassingQuality
}
