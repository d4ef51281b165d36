package vision

import (
	"context"
	"fmt"

	"github.com/mchen-dev/memedubber/internal/config"
)

// Provider abstracts a vision-capable language model (Gemini, OpenAI,
// Anthropic). It takes one image plus an instruction and returns the raw
// model text.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Request is the input for a single vision call.
type Request struct {
	ImagePNG       []byte // PNG-encoded image bytes
	Prompt         string // user instruction
	System         string // system instruction
	Temperature    float64
	ThinkingBudget int  // token allowance for internal reasoning, 0 = provider default
	JSONResponse   bool // require a JSON body as the raw response
}

// New constructs the provider named in the config. Unknown names are
// construction errors, not a silent fallback.
func New(cfg config.VisionConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(GeminiConfig{
			APIKey:  cfg.GeminiKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
		}), nil
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel), nil
	case "anthropic":
		return NewAnthropicProvider(cfg.AnthropicKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("vision provider %q not configured", cfg.Provider)
	}
}
