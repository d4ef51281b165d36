package caption

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"

	"github.com/mchen-dev/memedubber/internal/vision"
)

// DefaultLanguage is the fallback tag used whenever the model omits the
// language or extraction fails. Downstream code never sees an empty tag.
const DefaultLanguage = "en"

var (
	// ErrNoText signals that the model produced no usable caption text.
	ErrNoText = errors.New("no caption text in model response")
	// ErrBadResponse signals a response body that is not the requested JSON.
	ErrBadResponse = errors.New("malformed caption response")
)

// Result is the caption attributed to a meme image. LanguageCode is always
// populated, on failure paths too.
type Result struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

const systemInstruction = "You are an expert meme analyst."

const extractionPrompt = `You are an expert meme analyst. Your task is to analyze the provided image.
1. First, determine if the image contains clear, readable text (e.g., captions, dialogue).
2. If it DOES contain text: Extract the text verbatim.
3. If it does NOT contain text (or the text is unreadable): Create a short, funny, meme-style dialogue that fits the scene, characters, and mood.
4. Identify the primary language of the extracted or generated text. Use standard language codes (e.g., 'en' for English, 'zh-tw' for Traditional Chinese, 'ja' for Japanese, 'es' for Spanish).
5. Return your response as a single JSON object with two keys: "language_code" and "text". Do not add any other explanatory text or formatting.

Example for an English meme:
{
    "language_code": "en",
    "text": "This is the text from the meme."
}

Example for a Japanese meme without text:
{
    "language_code": "ja",
    "text": "面白いセリフを生成しました。"
}`

const (
	captionTemperature = 0.7 // biased toward creative captions over deterministic ones
	thinkingBudget     = 1024
)

// Extractor turns a meme image into caption text plus a language tag using a
// vision provider.
type Extractor struct {
	provider vision.Provider
}

func NewExtractor(p vision.Provider) *Extractor {
	return &Extractor{provider: p}
}

// Extract sends the image to the vision model and parses the JSON reply.
// The returned error distinguishes transport failures, malformed responses
// (ErrBadResponse) and empty captions (ErrNoText); in every failure case the
// Result still carries the default language tag. No retry is performed.
func (e *Extractor) Extract(ctx context.Context, img image.Image) (Result, error) {
	fail := Result{LanguageCode: DefaultLanguage}

	if img == nil {
		return fail, fmt.Errorf("%w: no image provided", ErrNoText)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fail, fmt.Errorf("encode image: %w", err)
	}

	raw, err := e.provider.Generate(ctx, vision.Request{
		ImagePNG:       buf.Bytes(),
		Prompt:         extractionPrompt,
		System:         systemInstruction,
		Temperature:    captionTemperature,
		ThinkingBudget: thinkingBudget,
		JSONResponse:   true,
	})
	if err != nil {
		return fail, fmt.Errorf("vision call: %w", err)
	}

	slog.Debug("caption model response", "provider", e.provider.Name(), "response", raw)

	var payload Result
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return fail, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if strings.TrimSpace(payload.Text) == "" {
		return fail, ErrNoText
	}

	if payload.LanguageCode == "" {
		payload.LanguageCode = DefaultLanguage
	}
	return payload, nil
}

// stripFences removes a markdown code fence some models wrap around JSON
// bodies even when asked not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
