package expiry

import "time"

// baseConfidence is assigned to every syntactically and semantically valid
// match. Shape matching alone does not differentiate confidence; horizon
// scoring during selection does.
const baseConfidence = 0.85

// Plausibility window for candidate years. Dates outside it are OCR
// misreads, not expiry dates.
const (
	minPlausibleYear = 2020
	maxPlausibleYear = 2035
)

// DateCandidate is a date parsed from one pattern match, not yet vetted
// for plausibility as a future expiry. Immutable once created.
type DateCandidate struct {
	// Date is the parsed calendar date at UTC midnight.
	Date time.Time

	// Raw is the exact substring of the recognized text that matched.
	Raw string

	// Confidence is the base confidence in [0,1].
	Confidence float64
}

// ScoredCandidate is a DateCandidate evaluated against a specific moment.
// Evaluation time is part of its identity: the same candidate scores
// differently at different moments, so scored candidates are never stored.
type ScoredCandidate struct {
	DateCandidate

	// Adjusted is the horizon-adjusted confidence in [0,1].
	Adjusted float64

	// DaysUntil is the signed whole-day distance from the evaluation
	// instant to the candidate date. Negative for expired dates.
	DaysUntil int
}
