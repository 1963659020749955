package xp

import (
	"math"

	"github.com/ascendapp/ascend-api/internal/domain"
)

// tierCap holds the daily soft-cap parameters for one subscription tier.
type tierCap struct {
	Cap         int
	PostCapRate float64
}

// tierCaps are fixed product parameters, reproduced exactly.
var tierCaps = map[domain.SubscriptionTier]tierCap{
	domain.TierFree:     {Cap: 150, PostCapRate: 0.10},
	domain.TierPro:      {Cap: 500, PostCapRate: 0.25},
	domain.TierChampion: {Cap: 1000, PostCapRate: 0.50},
}

// Effective applies the daily soft cap for a tier. XP earned below the cap
// passes through unchanged; the portion spilling over the cap is paid at the
// tier's reduced rate; beyond the cap everything is paid at the reduced
// rate. Effective XP is never zero - a trickle of at least 1 is always
// granted once capping kicks in.
//
// This is a pure function: dailyEarned is the sum of today's ledger events,
// and callers feed the result into the award path.
func Effective(tier domain.SubscriptionTier, dailyEarned, rawXP int) (effectiveXP int, capped bool) {
	tc, ok := tierCaps[tier]
	if !ok {
		tc = tierCaps[domain.TierFree]
	}

	if dailyEarned < tc.Cap {
		overflow := dailyEarned + rawXP - tc.Cap
		if overflow <= 0 {
			return rawXP, false
		}

		fullPortion := rawXP - overflow
		reducedPortion := int(math.Floor(float64(overflow) * tc.PostCapRate))
		if reducedPortion < 1 {
			reducedPortion = 1
		}
		return fullPortion + reducedPortion, true
	}

	// Already at or over the cap: everything is paid at the reduced rate.
	reduced := int(math.Floor(float64(rawXP) * tc.PostCapRate))
	if reduced < 1 {
		reduced = 1
	}
	return reduced, true
}
