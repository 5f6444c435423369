package ocr

import (
	"context"
	"image"
)

// Profile selects a page-segmentation assumption for one recognition pass.
//
// Expiry-date printing varies wildly in layout: sometimes a dense block of
// label text, sometimes one isolated line of stamped digits, sometimes a few
// characters scattered over packaging artwork. No single assumption is
// reliably best, so the adapter runs every profile against the same image.
type Profile int

const (
	// ProfileBlock assumes a single uniform block of text.
	ProfileBlock Profile = iota

	// ProfileLine assumes a single line of text.
	ProfileLine

	// ProfileSparse assumes sparse text scattered over the image.
	ProfileSparse

	// ProfileAuto performs fully automatic page segmentation.
	ProfileAuto
)

// DefaultProfiles is the fixed profile order used by the adapter. The order
// matters only for reproducibility of the joined output text.
var DefaultProfiles = []Profile{ProfileBlock, ProfileLine, ProfileSparse, ProfileAuto}

// String returns a short name for logging.
func (p Profile) String() string {
	switch p {
	case ProfileBlock:
		return "block"
	case ProfileLine:
		return "line"
	case ProfileSparse:
		return "sparse"
	case ProfileAuto:
		return "auto"
	}
	return "unknown"
}

// Token is one recognized word with the engine's confidence for it on the
// native 0-100 scale. Negative confidence means the engine could not score
// the token.
type Token struct {
	Text       string
	Confidence float64
}

// PassResult is the raw output of a single recognition pass.
type PassResult struct {
	// Text is the recognized text with original spacing and newlines.
	Text string

	// Tokens are the individual words with per-token confidence.
	Tokens []Token
}

// Recognizer is the external text-recognition capability. Implementations
// wrap a concrete OCR engine; tests substitute a deterministic stub.
type Recognizer interface {
	// Recognize runs one recognition pass over the image under the given
	// profile. A non-nil error means the pass produced nothing usable and
	// should be excluded from aggregation.
	Recognize(ctx context.Context, img image.Image, profile Profile) (*PassResult, error)
}
