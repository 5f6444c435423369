package expiry

import (
	"math"
	"time"
)

// Horizon bands for expiry plausibility, in days from the evaluation
// instant. Typical perishable shelf life runs to ~18 months; long-life
// goods to ~5 years.
const (
	nearHorizonDays = 540
	farHorizonDays  = 1825
)

// Multipliers applied to a candidate's base confidence by horizon band.
const (
	nearHorizonBoost    = 1.4
	farHorizonDiscount  = 0.9
	implausibleDiscount = 0.3
)

// SelectBest scores every candidate against now and returns the one with
// the highest adjusted confidence. Ties go to the earliest candidate in
// input order. ok is false only when candidates is empty.
//
// Scoring is multiplicative on the base confidence: dates 1-540 days out
// are boosted 1.4x (clamped to 1.0), dates 541-1825 days out take 0.9x,
// and everything else, already expired or beyond five years, takes 0.3x.
// Implausible candidates stay eligible: a label whose only readable date
// is a past manufacture date still yields an answer, at low confidence.
//
// now must be supplied by the caller; SelectBest never reads the clock, so
// scoring is deterministic for a fixed now.
func SelectBest(candidates []DateCandidate, now time.Time) (ScoredCandidate, bool) {
	var best ScoredCandidate
	found := false
	for _, cand := range candidates {
		scored := score(cand, now)
		if !found || scored.Adjusted > best.Adjusted {
			best = scored
			found = true
		}
	}
	return best, found
}

// score derives the horizon-adjusted confidence for one candidate.
func score(cand DateCandidate, now time.Time) ScoredCandidate {
	days := daysUntil(cand.Date, now)

	adjusted := cand.Confidence
	switch {
	case days >= 1 && days <= nearHorizonDays:
		adjusted *= nearHorizonBoost
	case days >= 1 && days <= farHorizonDays:
		adjusted *= farHorizonDiscount
	default:
		adjusted *= implausibleDiscount
	}
	if adjusted > 1.0 {
		adjusted = 1.0
	}

	return ScoredCandidate{
		DateCandidate: cand,
		Adjusted:      adjusted,
		DaysUntil:     days,
	}
}

// daysUntil is the floor of the signed day distance from now to date.
func daysUntil(date, now time.Time) int {
	return int(math.Floor(date.Sub(now).Hours() / 24))
}
