// Package imaging provides image loading and the preprocessing pipeline
// that prepares food-label photographs for text recognition.
//
// The package has two responsibilities:
//
//   - Loading: decoding PNG, JPEG, and GIF files from disk into memory.
//     A missing or undecodable file is a loading error, reported to the
//     caller; it is never conflated with a preprocessing failure.
//
//   - Preprocessing: a fixed, deterministic pipeline that converts a
//     decoded photograph into a binary (strictly black/white) image
//     favorable to OCR. Labels photographed on phones suffer glare, low
//     contrast, and small broken glyphs; the pipeline is tuned for that
//     failure mode rather than per-image parameter search.
//
// # Pipeline
//
// Preprocess runs these steps in fixed order:
//
//  1. Grayscale conversion
//  2. Downscale to at most 900px wide (shrink only, Lanczos resampling)
//  3. Contrast-limited adaptive histogram equalization (8x8 tile grid)
//  4. Median denoising
//  5. Mild Gaussian smoothing
//  6. Otsu binarization (automatic global threshold)
//  7. One morphological closing pass to reconnect broken strokes
//
// # Thread Safety
//
// Preprocess is a pure function: it never fails for a validly decoded
// image, shares no state, and is safe to call from concurrent goroutines
// as long as each call operates on its own image.
package imaging
