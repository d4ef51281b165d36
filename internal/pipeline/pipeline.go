package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/mchen-dev/memedubber/internal/caption"
	"github.com/mchen-dev/memedubber/internal/tts"
)

// Extractor is the caption stage of the pipeline.
type Extractor interface {
	Extract(ctx context.Context, img image.Image) (caption.Result, error)
}

// Result is what the front end renders: a markdown status message and,
// on success, the audio artifact. It is always well-formed; the pipeline
// never returns an error to its caller.
type Result struct {
	Message string        `json:"message"`
	Audio   *tts.Artifact `json:"audio,omitempty"`
}

// errSynthPanic marks a failure that escaped a synthesizer as a panic rather
// than an error. Its description is surfaced to the user.
var errSynthPanic = errors.New("synthesizer panic")

// Orchestrator sequences caption extraction and speech synthesis, absorbing
// every failure into a user-facing status message.
type Orchestrator struct {
	extractor Extractor
	synths    map[tts.Backend]tts.Synthesizer
}

func New(extractor Extractor, synths map[tts.Backend]tts.Synthesizer) *Orchestrator {
	return &Orchestrator{extractor: extractor, synths: synths}
}

// Process runs image -> caption -> audio for one request. Failures at each
// stage terminate the pipeline with a status describing it; diagnostics go
// to the log, not the user.
func (o *Orchestrator) Process(ctx context.Context, img image.Image, backend tts.Backend) Result {
	if img == nil {
		return Result{Message: "**Error:** Please upload an image first."}
	}

	capt, err := o.extractor.Extract(ctx, img)
	if err != nil {
		slog.Error("caption extraction failed", "error", err)
		return Result{Message: "**Error:** No text found in the image. Please try another image."}
	}

	artifact, err := o.dub(ctx, capt, backend)
	if err != nil {
		slog.Error("speech synthesis failed", "backend", backend.String(), "error", err)
		if errors.Is(err, errSynthPanic) {
			return Result{Message: fmt.Sprintf(
				"**Error generating audio:** %v\n\n**Extracted Text:** %s\n\n**Language:** %s",
				err, capt.Text, capt.LanguageCode,
			)}
		}
		return Result{Message: fmt.Sprintf(
			"**Extracted Text:** %s\n\n**Language:** %s\n\n**Error:** Failed to generate audio",
			capt.Text, capt.LanguageCode,
		)}
	}

	return Result{
		Message: fmt.Sprintf("**Extracted Text:** %s\n\n**Language:** %s", capt.Text, capt.LanguageCode),
		Audio:   artifact,
	}
}

// dub runs the selected synthesizer. A panicking backend is converted into an
// error here so nothing ever propagates past the pipeline boundary.
func (o *Orchestrator) dub(ctx context.Context, capt caption.Result, backend tts.Backend) (artifact *tts.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact, err = nil, fmt.Errorf("%w: %v", errSynthPanic, r)
		}
	}()

	s, ok := o.synths[backend]
	if !ok {
		return nil, fmt.Errorf("no synthesizer registered for backend %q", backend)
	}
	return s.Synthesize(ctx, tts.SynthesisRequest{
		Text:         capt.Text,
		LanguageCode: capt.LanguageCode,
	})
}
