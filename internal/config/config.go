package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server ServerConfig
	Vision VisionConfig
	TTS    TTSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type VisionConfig struct {
	Provider       string // "gemini", "openai" or "anthropic"
	GeminiKey      string
	GeminiBaseURL  string
	GeminiModel    string
	OpenAIKey      string
	OpenAIModel    string
	AnthropicKey   string
	AnthropicModel string
}

type TTSConfig struct {
	CloudBaseURL string // endpoint of the language-keyed MP3 service
	LocalBinPath string // default: "piper"
	LocalModel   string // required when the local backend is used
	SampleRate   int    // raw PCM rate of the local model, default 24000
	OutputDir    string // where audio artifacts are written
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 7860)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	sampleRate, err := getEnvInt("TTS_LOCAL_SAMPLE_RATE", 24000)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_LOCAL_SAMPLE_RATE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "127.0.0.1"),
			Port: port,
		},
		Vision: VisionConfig{
			Provider:       getEnv("VISION_PROVIDER", "gemini"),
			GeminiKey:      getEnv("GOOGLE_API_KEY", ""),
			GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_VISION_MODEL", "gpt-4o"),
			AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel: getEnv("ANTHROPIC_VISION_MODEL", "claude-sonnet-4-20250514"),
		},
		TTS: TTSConfig{
			CloudBaseURL: getEnv("TTS_CLOUD_BASE_URL", "https://translate.google.com"),
			LocalBinPath: getEnv("TTS_LOCAL_BIN", "piper"),
			LocalModel:   getEnv("TTS_LOCAL_MODEL", ""),
			SampleRate:   sampleRate,
			OutputDir:    getEnv("AUDIO_OUTPUT_DIR", ""),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the one required secret: the API key of the configured
// vision provider. Absence is a startup error, never a runtime one.
func (c *Config) Validate() error {
	var missing []string
	switch c.Vision.Provider {
	case "gemini":
		if c.Vision.GeminiKey == "" {
			missing = append(missing, "GOOGLE_API_KEY")
		}
	case "openai":
		if c.Vision.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "anthropic":
		if c.Vision.AnthropicKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		return fmt.Errorf("unknown vision provider %q", c.Vision.Provider)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
