package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantrywatch/pantrywatch/internal/imaging"
	"github.com/pantrywatch/pantrywatch/internal/logger"
	"github.com/pantrywatch/pantrywatch/internal/ocr"
)

// FailureKind classifies why detection produced no date.
type FailureKind string

const (
	// FailureLoad: the image file is missing or undecodable.
	FailureLoad FailureKind = "load"

	// FailureNoCandidates: no date pattern matched the recognized text.
	FailureNoCandidates FailureKind = "no_date_pattern"

	// FailureNoPlausible: candidates existed but none could be ranked.
	// Unreachable while the selector ranks every candidate; observing it
	// means an invariant was violated.
	FailureNoPlausible FailureKind = "no_plausible_date"

	// FailurePipeline: an unexpected error escaped a pipeline stage.
	FailurePipeline FailureKind = "pipeline_error"
)

// diagnosticLimit caps the recognized-text excerpt carried by failures.
const diagnosticLimit = 200

// ExtractionResult is the facade's output for one image: either a detected
// expiry date or a classified failure, always with enough diagnostic
// payload for the caller to fall back to manual entry.
type ExtractionResult struct {
	// Success reports whether a date was detected. Failure fields are
	// meaningful only when Success is false, and vice versa.
	Success bool

	// Date is the detected expiry date at UTC midnight.
	Date time.Time

	// Confidence is the selected candidate's adjusted confidence in [0,1].
	Confidence float64

	// MatchedText is the raw substring the winning candidate matched.
	MatchedText string

	// DaysUntilExpiry is the signed whole-day horizon at detection time.
	DaysUntilExpiry int

	// OCRConfidence is the recognition aggregate confidence in [0,1].
	// Populated for both successes and failures.
	OCRConfidence float64

	// Kind classifies the failure.
	Kind FailureKind

	// Reason is a human-readable failure description.
	Reason string

	// DiagnosticText is a truncated excerpt of the recognized text.
	DiagnosticText string

	// Candidates lists the raw matched substrings when candidates were
	// found but none selected.
	Candidates []string
}

// DateString renders the detected date as an unambiguous ISO calendar
// date, e.g. "2026-11-05".
func (r ExtractionResult) DateString() string {
	return r.Date.Format("2006-01-02")
}

// Detector orchestrates the end-to-end pipeline for one image: load,
// preprocess, recognize, extract, select. One Detect call processes one
// image with no shared mutable state, so a single Detector serves
// concurrent callers.
type Detector struct {
	// OCR is the multi-pass recognition adapter.
	OCR *ocr.Adapter

	// Now supplies the evaluation instant for horizon scoring. Defaults
	// to time.Now in UTC; tests substitute a fixed clock.
	Now func() time.Time

	log zerolog.Logger
}

// NewDetector creates a Detector over the given recognition adapter.
func NewDetector(adapter *ocr.Adapter) *Detector {
	return &Detector{
		OCR: adapter,
		Now: func() time.Time { return time.Now().UTC() },
		log: logger.WithComponent("expiry"),
	}
}

// Detect runs the full pipeline for one image file and reports the outcome
// as a value. It never panics: any unexpected failure inside the pipeline
// is caught and reported as a FailurePipeline result with zero OCR
// confidence.
func (d *Detector) Detect(ctx context.Context, imagePath string) (result ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("image", imagePath).Interface("panic", r).Msg("expiry detection pipeline panicked")
			result = ExtractionResult{
				Kind:   FailurePipeline,
				Reason: fmt.Sprintf("unexpected pipeline error: %v", r),
			}
		}
	}()

	img, err := imaging.Load(imagePath)
	if err != nil {
		d.log.Warn().Err(err).Str("image", imagePath).Msg("image load failed")
		return ExtractionResult{
			Kind:   FailureLoad,
			Reason: err.Error(),
		}
	}

	processed := imaging.Preprocess(img)
	recognized := d.OCR.Recognize(ctx, processed)
	d.log.Debug().
		Str("image", imagePath).
		Float64("ocr_confidence", recognized.Confidence).
		Int("text_length", len(recognized.Text)).
		Msg("recognition complete")

	candidates := ExtractCandidates(recognized.Text)
	if len(candidates) == 0 {
		return ExtractionResult{
			Kind:           FailureNoCandidates,
			Reason:         "no date pattern matched in text",
			DiagnosticText: excerpt(recognized.Text, diagnosticLimit),
			OCRConfidence:  recognized.Confidence,
		}
	}

	best, ok := SelectBest(candidates, d.Now())
	if !ok {
		// The selector ranks every candidate, so a non-empty set cannot
		// yield nothing; treat it as an invariant violation.
		d.log.Error().Str("image", imagePath).Int("candidates", len(candidates)).Msg("selector returned nothing for a non-empty candidate set")
		raws := make([]string, len(candidates))
		for i, c := range candidates {
			raws[i] = c.Raw
		}
		return ExtractionResult{
			Kind:          FailureNoPlausible,
			Reason:        "found dates but none valid as future expiry",
			Candidates:    raws,
			OCRConfidence: recognized.Confidence,
		}
	}

	return ExtractionResult{
		Success:         true,
		Date:            best.Date,
		Confidence:      best.Adjusted,
		MatchedText:     best.Raw,
		DaysUntilExpiry: best.DaysUntil,
		OCRConfidence:   recognized.Confidence,
	}
}

// excerpt truncates diagnostic text to limit runes, marking the cut.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
