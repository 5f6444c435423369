package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is a Recognizer backed by the Tesseract OCR engine via
// gosseract. Tesseract must be installed on the system together with the
// language data for the configured language.
//
// Each Recognize call creates and closes its own gosseract client, so a
// single Tesseract value is safe for concurrent use.
type Tesseract struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string
}

// NewTesseract returns a Tesseract recognizer for the given language code.
// An empty language defaults to English.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{Language: language}
}

// pageSegMode maps a Profile to the corresponding Tesseract segmentation mode.
func pageSegMode(p Profile) gosseract.PageSegMode {
	switch p {
	case ProfileBlock:
		return gosseract.PSM_SINGLE_BLOCK
	case ProfileLine:
		return gosseract.PSM_SINGLE_LINE
	case ProfileSparse:
		return gosseract.PSM_SPARSE_TEXT
	default:
		return gosseract.PSM_AUTO
	}
}

// Recognize performs one OCR pass over the image.
//
// The image is encoded to PNG in memory and handed to Tesseract directly;
// no temporary files are written. The native Tesseract call is a blocking
// C invocation and cannot be interrupted mid-run: ctx is checked before
// the call starts, and callers that need a hard deadline should run
// Recognize through the adapter, which abandons overdue passes.
//
// If word-level confidence extraction fails, the pass still succeeds with
// the recognized text and no tokens; the adapter then scores it 0.0.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, profile Profile) (*PassResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(pageSegMode(profile)); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR pass %s failed: %w", profile, err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Text without confidences is still usable output.
		return &PassResult{Text: text}, nil
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		tokens = append(tokens, Token{
			Text:       box.Word,
			Confidence: box.Confidence,
		})
	}

	return &PassResult{Text: text, Tokens: tokens}, nil
}
