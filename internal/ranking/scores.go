// Package ranking implements the statistical scoring used to order posts and
// replies. All functions here are pure: they take materialized vote counts
// and timestamps and return finite numbers, clamping malformed input to safe
// defaults instead of propagating NaN or Inf.
package ranking

import (
	"math"
	"time"
)

const (
	// decayHours is the time constant of the exponential age decay.
	decayHours = 24.0

	// DefaultZ is the z-score for a 95% Wilson confidence interval.
	DefaultZ = 1.96

	// risingMaxAgeHours bounds which items count as rising at all.
	risingMaxAgeHours = 24.0
)

// finite clamps v to a finite positive number. Scores feed straight into
// comparators, so an underflowed or non-numeric value must never escape.
func finite(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return math.SmallestNonzeroFloat64
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}

// HotScore blends vote magnitude and recency: log10 dampens large vote
// counts, an exponential with a 24 hour time constant decays with age. The
// result is positive and finite for any net vote count and any age,
// including future timestamps and the zero time.
func HotScore(netVotes int, createdAt, now time.Time) float64 {
	score := float64(netVotes)
	if score < 1 {
		score = 1
	}
	ageHours := now.Sub(createdAt).Hours()
	decay := math.Exp(-ageHours / decayHours)
	weight := math.Log10(score + 1)
	return finite(weight * decay)
}

// WilsonScore returns the lower bound of the 95% Wilson confidence interval
// for the upvote proportion. At the same ratio it ranks items with more
// total votes higher, which makes it a conservative tie-break.
func WilsonScore(upvotes, totalVotes int) float64 {
	return WilsonScoreZ(upvotes, totalVotes, DefaultZ)
}

// WilsonScoreZ is WilsonScore with an explicit z-score.
func WilsonScoreZ(upvotes, totalVotes int, z float64) float64 {
	if totalVotes <= 0 {
		return 0
	}
	if upvotes < 0 {
		upvotes = 0
	}
	if upvotes > totalVotes {
		upvotes = totalVotes
	}

	n := float64(totalVotes)
	phat := float64(upvotes) / n
	z2 := z * z
	denom := 1 + z2/n
	adj := z * math.Sqrt((phat*(1-phat)+z2/(4*n))/n)
	v := (phat + z2/(2*n) - adj) / denom
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// ControversyScore rewards near-even vote splits, weighted by engagement: a
// perfectly split item scores log10(total+1), a one-sided item scores 0.
func ControversyScore(upvotes, downvotes int) float64 {
	if upvotes < 0 {
		upvotes = 0
	}
	if downvotes < 0 {
		downvotes = 0
	}
	total := upvotes + downvotes
	if total == 0 {
		return 0
	}

	lo, hi := float64(upvotes), float64(downvotes)
	if lo > hi {
		lo, hi = hi, lo
	}
	balance := lo / hi
	return balance * math.Log10(float64(total)+1)
}

// TrendingScore is the composite used for the auxiliary "trending" view.
func TrendingScore(upvotes, downvotes int, createdAt, now time.Time) float64 {
	return HotScore(upvotes-downvotes, createdAt, now) + 0.3*ControversyScore(upvotes, downvotes)
}

// RisingScore ranks young items by vote velocity. Items older than 24 hours
// score 0; the age is floored at one hour so items created seconds ago do
// not blow up the ratio.
func RisingScore(upvotes, downvotes int, createdAt, now time.Time) float64 {
	if upvotes < 0 {
		upvotes = 0
	}
	if downvotes < 0 {
		downvotes = 0
	}
	ageHours := now.Sub(createdAt).Hours()
	if ageHours > risingMaxAgeHours {
		return 0
	}
	if ageHours < 1 {
		ageHours = 1
	}
	return float64(upvotes+downvotes) / ageHours
}
