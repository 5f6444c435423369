package ocr

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// stubRecognizer returns canned results keyed by profile.
type stubRecognizer struct {
	results map[Profile]*PassResult
	errs    map[Profile]error
	panics  map[Profile]bool
	delay   time.Duration
}

func (s *stubRecognizer) Recognize(_ context.Context, _ image.Image, p Profile) (*PassResult, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panics[p] {
		panic("recognizer exploded")
	}
	if err := s.errs[p]; err != nil {
		return nil, err
	}
	if res := s.results[p]; res != nil {
		return res, nil
	}
	return &PassResult{}, nil
}

func testImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 10, 10))
}

func TestAdapterJoinsKeptPassesInOrder(t *testing.T) {
	stub := &stubRecognizer{
		results: map[Profile]*PassResult{
			ProfileBlock:  {Text: "EXP 05/11/2026", Tokens: []Token{{Text: "EXP", Confidence: 80}, {Text: "05/11/2026", Confidence: 90}}},
			ProfileLine:   {Text: "   \n\t"}, // whitespace only, discarded
			ProfileSparse: {Text: "BEST BEFORE", Tokens: []Token{{Text: "BEST", Confidence: 60}, {Text: "BEFORE", Confidence: 70}}},
			ProfileAuto:   {Text: "05/11/2026", Tokens: []Token{{Text: "05/11/2026", Confidence: 50}}},
		},
	}
	adapter := NewAdapter(stub, 0)

	got := adapter.Recognize(context.Background(), testImage())

	wantText := "EXP 05/11/2026 BEST BEFORE 05/11/2026"
	if got.Text != wantText {
		t.Errorf("Text = %q, want %q", got.Text, wantText)
	}

	// Kept confidences: 0.85, 0.65, 0.50 -> mean 2.0/3.
	want := (0.85 + 0.65 + 0.50) / 3
	if math.Abs(got.Confidence-want) > 1e-9 {
		t.Errorf("Confidence = %v, want %v", got.Confidence, want)
	}
}

func TestAdapterFailingPassExcluded(t *testing.T) {
	stub := &stubRecognizer{
		results: map[Profile]*PassResult{
			ProfileLine: {Text: "USE BY 2026-01-31", Tokens: []Token{{Text: "USE", Confidence: 100}}},
		},
		errs: map[Profile]error{
			ProfileBlock:  errors.New("engine not available"),
			ProfileSparse: errors.New("engine not available"),
			ProfileAuto:   errors.New("engine not available"),
		},
	}
	adapter := NewAdapter(stub, 0)

	got := adapter.Recognize(context.Background(), testImage())
	if got.Text != "USE BY 2026-01-31" {
		t.Errorf("Text = %q, want the single surviving pass", got.Text)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
}

func TestAdapterAllPassesDiscarded(t *testing.T) {
	stub := &stubRecognizer{
		errs: map[Profile]error{
			ProfileBlock:  errors.New("boom"),
			ProfileLine:   errors.New("boom"),
			ProfileSparse: errors.New("boom"),
			ProfileAuto:   errors.New("boom"),
		},
	}
	adapter := NewAdapter(stub, 0)

	got := adapter.Recognize(context.Background(), testImage())
	if got.Text != "" {
		t.Errorf("Text = %q, want empty", got.Text)
	}
	if got.Confidence != 0.0 {
		t.Errorf("Confidence = %v, want 0.0", got.Confidence)
	}
}

func TestAdapterRecoversPanickingPass(t *testing.T) {
	stub := &stubRecognizer{
		results: map[Profile]*PassResult{
			ProfileAuto: {Text: "BB 12.03.2027", Tokens: []Token{{Text: "BB", Confidence: 40}}},
		},
		panics: map[Profile]bool{
			ProfileBlock:  true,
			ProfileLine:   true,
			ProfileSparse: true,
		},
	}
	adapter := NewAdapter(stub, 0)

	got := adapter.Recognize(context.Background(), testImage())
	if got.Text != "BB 12.03.2027" {
		t.Errorf("Text = %q, want output of the surviving pass", got.Text)
	}
}

func TestAdapterPassTimeout(t *testing.T) {
	stub := &stubRecognizer{
		delay: 200 * time.Millisecond,
		results: map[Profile]*PassResult{
			ProfileBlock: {Text: "should never be kept"},
		},
	}
	adapter := NewAdapter(stub, 10*time.Millisecond)

	got := adapter.Recognize(context.Background(), testImage())
	if got.Text != "" || got.Confidence != 0.0 {
		t.Errorf("got %+v, want degenerate empty result after timeouts", got)
	}
}

func TestMeanTokenConfidence(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   float64
	}{
		{"no tokens", nil, 0.0},
		{"all negative", []Token{{Confidence: -1}, {Confidence: -1}}, 0.0},
		{"negatives excluded", []Token{{Confidence: 80}, {Confidence: -1}, {Confidence: 40}}, 0.6},
		{"normalized to unit range", []Token{{Confidence: 100}}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meanTokenConfidence(tt.tokens); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("meanTokenConfidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageSegModeMapping(t *testing.T) {
	tests := []struct {
		profile Profile
		want    gosseract.PageSegMode
	}{
		{ProfileBlock, gosseract.PSM_SINGLE_BLOCK},
		{ProfileLine, gosseract.PSM_SINGLE_LINE},
		{ProfileSparse, gosseract.PSM_SPARSE_TEXT},
		{ProfileAuto, gosseract.PSM_AUTO},
	}
	for _, tt := range tests {
		if got := pageSegMode(tt.profile); got != tt.want {
			t.Errorf("pageSegMode(%s) = %v, want %v", tt.profile, got, tt.want)
		}
	}
}
