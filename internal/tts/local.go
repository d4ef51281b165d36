package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LocalTTSConfig holds configuration for the local neural TTS backend.
type LocalTTSConfig struct {
	BinPath    string // default: "piper"
	ModelPath  string // required: path to the voice model
	SampleRate int    // raw PCM rate of the model output, default 24000
	OutputDir  string
}

// LocalTTS synthesizes speech with a locally-loaded neural voice model via
// subprocess, capturing raw 16-bit mono PCM and wrapping it into a WAV file.
//
// Unlike the cloud backend, the language code is accepted but not enforced:
// the loaded voice model fixes the language, the tag only travels along for
// diagnostics. This asymmetry is inherent to the backend, not a bug.
type LocalTTS struct {
	cfg LocalTTSConfig
}

func NewLocalTTS(cfg LocalTTSConfig) *LocalTTS {
	if cfg.BinPath == "" {
		cfg.BinPath = "piper"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 24000
	}
	return &LocalTTS{cfg: cfg}
}

func (l *LocalTTS) Name() string { return "local-neural" }

// Synthesize pipes text into the model binary and writes the raw samples to
// a fresh WAV artifact.
func (l *LocalTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*Artifact, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if l.cfg.ModelPath == "" {
		return nil, fmt.Errorf("local voice model path is required (set TTS_LOCAL_MODEL)")
	}

	cmd := exec.CommandContext(ctx, l.cfg.BinPath, "--model", l.cfg.ModelPath, "--output-raw")
	cmd.Stdin = strings.NewReader(req.Text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("local tts failed: %w (stderr: %s)", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("local tts produced no audio")
	}

	path, err := artifactPath(l.cfg.OutputDir, "local", ".wav")
	if err != nil {
		return nil, err
	}
	if err := writeWAV(path, stdout.Bytes(), l.cfg.SampleRate); err != nil {
		return nil, err
	}
	if err := verifyArtifact(path); err != nil {
		return nil, err
	}

	return &Artifact{Path: path, ContentType: "audio/wav"}, nil
}

// writeWAV wraps raw little-endian 16-bit mono PCM into a WAV container.
func writeWAV(path string, pcm []byte, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}
