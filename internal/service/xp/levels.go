// Package xp implements the XP ledger and level resolver: the level curve,
// the per-tier daily soft cap, and the transactional award path that keeps
// the ledger and the progression aggregate in sync.
package xp

import "math"

// ForLevel returns the cumulative XP required to reach a level:
// floor(100 * level^1.5) for levels above 1, zero for level 1.
func ForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// LevelFromXP returns the largest level whose threshold is at or below the
// given cumulative XP, scanning upward from 1. The level stored on the
// progression aggregate is always this value; it is never updated
// independently.
func LevelFromXP(totalXP int) int {
	level := 1
	for ForLevel(level+1) <= totalXP {
		level++
	}
	return level
}
