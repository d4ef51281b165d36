package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// GoogleTTSConfig holds configuration for the cloud MP3 backend.
type GoogleTTSConfig struct {
	BaseURL   string // default: "https://translate.google.com"
	OutputDir string
}

// GoogleTTS synthesizes speech with Google's translate TTS endpoint. The
// voice is selected by the language code alone, which is the whole contract:
// pass "ja" and you get a Japanese voice.
type GoogleTTS struct {
	cfg        GoogleTTSConfig
	httpClient *http.Client
}

func NewGoogleTTS(cfg GoogleTTSConfig) *GoogleTTS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translate.google.com"
	}
	return &GoogleTTS{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GoogleTTS) Name() string { return "google-tts" }

// Synthesize fetches MP3 audio for the text and writes it to a fresh
// artifact file, returning its path after verifying the write.
func (g *GoogleTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*Artifact, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("text is required")
	}
	lang := req.LanguageCode
	if lang == "" {
		lang = "en"
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", req.Text)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", g.cfg.BaseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts returned empty audio")
	}

	path, err := artifactPath(g.cfg.OutputDir, "gtts", ".mp3")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}
	if err := verifyArtifact(path); err != nil {
		return nil, err
	}

	return &Artifact{Path: path, ContentType: "audio/mpeg"}, nil
}
