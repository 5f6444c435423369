// Package ocr provides multi-pass text recognition for preprocessed label
// images.
//
// The package wraps an external OCR engine behind the Recognizer interface
// (the production implementation uses Tesseract via gosseract/v2) and runs
// it under four page-segmentation profiles tuned for the layouts expiry
// dates are printed in: a uniform text block, a single line, sparse text,
// and fully automatic segmentation.
//
// # Prerequisites
//
// The Tesseract recognizer requires a system Tesseract installation:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Aggregation
//
// The Adapter reduces the per-profile passes to a single text and a single
// confidence in [0,1]. Passes that fail, time out, or produce only
// whitespace are excluded; if all passes are excluded the adapter reports
// empty text with confidence 0.0 rather than an error, so the caller can
// distinguish "nothing readable" from a broken pipeline.
//
// # Error Handling
//
// Individual pass failures are recovered locally and logged at debug level.
// The adapter itself never returns an error: its degenerate output (empty
// text, zero confidence) is the defined result of total recognition failure.
package ocr
