package vision

import "github.com/mchen-dev/memedubber/internal/config"

func configFor(provider string) config.VisionConfig {
	return config.VisionConfig{
		Provider:     provider,
		GeminiKey:    "gk",
		OpenAIKey:    "ok",
		AnthropicKey: "ak",
	}
}
