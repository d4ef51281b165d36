package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "VISION_PROVIDER",
		"GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"TTS_CLOUD_BASE_URL", "TTS_LOCAL_BIN", "TTS_LOCAL_MODEL",
		"TTS_LOCAL_SAMPLE_RATE", "AUDIO_OUTPUT_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:7860" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.Vision.Provider != "gemini" {
		t.Errorf("Vision.Provider = %q, want gemini", cfg.Vision.Provider)
	}
	if cfg.Vision.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.Vision.GeminiModel)
	}
	if cfg.TTS.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", cfg.TTS.SampleRate)
	}
	if cfg.TTS.LocalBinPath != "piper" {
		t.Errorf("LocalBinPath = %q", cfg.TTS.LocalBinPath)
	}
}

func TestLoadBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad SERVER_PORT")
	}
}

func TestValidateRequiresProviderKey(t *testing.T) {
	tests := []struct {
		provider string
		keyEnv   string
	}{
		{provider: "gemini", keyEnv: "GOOGLE_API_KEY"},
		{provider: "openai", keyEnv: "OPENAI_API_KEY"},
		{provider: "anthropic", keyEnv: "ANTHROPIC_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("VISION_PROVIDER", tt.provider)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.keyEnv) {
				t.Fatalf("Validate() = %v, want missing %s", err, tt.keyEnv)
			}

			t.Setenv(tt.keyEnv, "secret")
			cfg, err = Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() with key set: %v", err)
			}
		})
	}
}

func TestValidateUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISION_PROVIDER", "clip")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
