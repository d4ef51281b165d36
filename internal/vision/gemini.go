package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiConfig holds configuration for the Gemini vision backend.
type GeminiConfig struct {
	APIKey  string
	BaseURL string // default: "https://generativelanguage.googleapis.com"
	Model   string // default: "gemini-2.5-flash"
}

// GeminiProvider calls the Gemini generateContent REST API directly.
type GeminiProvider struct {
	cfg        GeminiConfig
	httpClient *http.Client
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

type geminiGenerateReq struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiGenConfig struct {
	Temperature      float64               `json:"temperature,omitempty"`
	ResponseMimeType string                `json:"responseMimeType,omitempty"`
	ThinkingConfig   *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiGenerateResp struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	gReq := geminiGenerateReq{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: "image/png",
					Data:     base64.StdEncoding.EncodeToString(req.ImagePNG),
				}},
				{Text: req.Prompt},
			},
		}},
	}
	if req.System != "" {
		gReq.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	genCfg := &geminiGenConfig{Temperature: req.Temperature}
	if req.JSONResponse {
		genCfg.ResponseMimeType = "application/json"
	}
	if req.ThinkingBudget > 0 {
		genCfg.ThinkingConfig = &geminiThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}
	gReq.GenerationConfig = genCfg

	body, err := json.Marshal(gReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.cfg.BaseURL, p.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.cfg.APIKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini generate failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gResp geminiGenerateResp
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("gemini decode: %w", err)
	}

	if len(gResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	content := ""
	for _, part := range gResp.Candidates[0].Content.Parts {
		content += part.Text
	}
	return content, nil
}
