// Package expiry turns recognized label text into a single validated
// expiry date with a confidence score.
//
// The pipeline has three stages:
//
//   - Extraction: an ordered list of date-shape patterns is scanned over
//     the full text, every non-overlapping occurrence of every pattern.
//     Each match runs through a pure handler that resolves ambiguous field
//     order and textual months, constructs a real calendar date, and
//     rejects years outside the 2020-2035 plausibility window (an OCR
//     misread guard).
//
//   - Selection: candidates are scored by how plausible their horizon is
//     for a printed expiry date relative to an explicit "now". Near-term
//     dates (up to ~18 months out) are boosted; long-shelf-life horizons
//     (up to ~5 years) are mildly discounted; everything else, including
//     already-expired dates, is heavily discounted but never excluded.
//
//   - Detection: the Detector facade orchestrates image loading,
//     preprocessing, multi-pass recognition, extraction, and selection for
//     one image, packaging the outcome as an ExtractionResult. It never
//     lets a pipeline failure escape as a panic.
//
// All dates are UTC-anchored calendar dates with no time-of-day component.
// Nothing in this package holds state across calls; concurrent detections
// are independent.
package expiry
