package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Backend selects one of the two speech-synthesis implementations. It is a
// closed set: ParseBackend rejects anything else instead of defaulting.
type Backend int

const (
	// BackendCloud is the hosted, language-keyed MP3 service.
	BackendCloud Backend = iota
	// BackendLocal is the locally-loaded neural model producing WAV.
	BackendLocal
)

func (b Backend) String() string {
	switch b {
	case BackendCloud:
		return "cloud"
	case BackendLocal:
		return "local"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps a selector string to a Backend. Unknown values are an
// error so a typo never silently falls through to a default.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cloud":
		return BackendCloud, nil
	case "local":
		return BackendLocal, nil
	default:
		return 0, fmt.Errorf("unknown tts backend %q (want \"cloud\" or \"local\")", s)
	}
}

// SynthesisRequest holds the parameters for text-to-speech generation.
// Text must be non-empty; callers guard that before reaching a backend.
type SynthesisRequest struct {
	Text         string
	LanguageCode string // ISO-639-1-style tag, e.g. "en", "ja", "zh-tw"
}

// Artifact references one generated audio file.
type Artifact struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"` // "audio/mpeg" (cloud) or "audio/wav" (local)
}

// Synthesizer is the interface both speech backends implement.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*Artifact, error)
	Name() string
}

// artifactPath returns a unique output path for one invocation. Per-request
// names keep overlapping calls from racing on a shared file.
func artifactPath(dir, backend, ext string) (string, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "meme-audio")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("meme_audio_%s_%s%s", backend, uuid.NewString(), ext)
	return filepath.Join(dir, name), nil
}

// verifyArtifact confirms the file landed on disk and is non-empty before a
// backend reports success.
func verifyArtifact(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("verify audio file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("audio file %s is empty", path)
	}
	return nil
}
