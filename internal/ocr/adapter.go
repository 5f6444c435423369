package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantrywatch/pantrywatch/internal/logger"
)

// Result is the aggregate output of running all profiles over one image.
type Result struct {
	// Text is the kept per-profile texts joined with a single space, in
	// profile-invocation order. Empty when every profile was discarded.
	Text string

	// Confidence is the arithmetic mean of the kept per-profile
	// confidences, normalized to [0,1]. 0.0 when every profile was
	// discarded. Never negative, never unset.
	Confidence float64
}

// Adapter runs a Recognizer under several page-segmentation profiles and
// reduces the passes to one text and one confidence.
//
// A pass is discarded when it fails, exceeds the per-pass timeout, panics,
// or yields only whitespace. Discarded passes are excluded from the
// aggregate and never retried. When every pass is discarded, the adapter
// returns empty text with confidence 0.0: a degenerate success, not an
// error, so downstream extraction can legitimately report "no candidates".
type Adapter struct {
	rec      Recognizer
	profiles []Profile
	timeout  time.Duration
	log      zerolog.Logger
}

// NewAdapter creates an adapter over the given recognizer using the default
// four profiles. timeout bounds each individual pass; zero means no bound.
func NewAdapter(rec Recognizer, timeout time.Duration) *Adapter {
	return &Adapter{
		rec:      rec,
		profiles: DefaultProfiles,
		timeout:  timeout,
		log:      logger.WithComponent("ocr"),
	}
}

// Recognize runs all profiles against the image and aggregates the output.
func (a *Adapter) Recognize(ctx context.Context, img image.Image) Result {
	var texts []string
	var confs []float64

	for _, profile := range a.profiles {
		pass, err := a.runPass(ctx, img, profile)
		if err != nil {
			a.log.Debug().Err(err).Stringer("profile", profile).Msg("recognition pass discarded")
			continue
		}
		if strings.TrimSpace(pass.Text) == "" {
			continue
		}
		texts = append(texts, pass.Text)
		confs = append(confs, meanTokenConfidence(pass.Tokens))
	}

	if len(texts) == 0 {
		return Result{}
	}

	return Result{
		Text:       strings.Join(texts, " "),
		Confidence: mean(confs),
	}
}

// runPass executes one pass with the per-pass deadline, recovering a
// panicking recognizer into an ordinary error. An abandoned pass's goroutine
// is left to finish on its own; its result is discarded.
func (a *Adapter) runPass(ctx context.Context, img image.Image, profile Profile) (*PassResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	type outcome struct {
		res *PassResult
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("recognizer panic: %v", r)}
			}
		}()
		res, err := a.rec.Recognize(ctx, img, profile)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.res, o.err
	}
}

// meanTokenConfidence averages token confidences, normalized to [0,1].
// Tokens with negative confidence are excluded; if every token is excluded
// (or there are none), the pass confidence is 0.0.
func meanTokenConfidence(tokens []Token) float64 {
	var sum float64
	var n int
	for _, tok := range tokens {
		if tok.Confidence < 0 {
			continue
		}
		sum += tok.Confidence
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n) / 100.0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
