package tts

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-audio/wav"
)

func TestLocalTTSMissingModel(t *testing.T) {
	l := NewLocalTTS(LocalTTSConfig{OutputDir: t.TempDir()})
	_, err := l.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "en"})
	if err == nil || !strings.Contains(err.Error(), "model path is required") {
		t.Fatalf("error = %v, want missing model path", err)
	}
}

func TestLocalTTSMissingBinary(t *testing.T) {
	l := NewLocalTTS(LocalTTSConfig{
		BinPath:   filepath.Join(t.TempDir(), "no-such-binary"),
		ModelPath: "voice.onnx",
		OutputDir: t.TempDir(),
	})
	_, err := l.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "en"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestLocalTTSSynthesize(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub synthesizer is a shell script")
	}

	// Stub model binary: swallows stdin, emits four bytes of raw PCM.
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-tts")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat > /dev/null\nprintf 'abcd'\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	l := NewLocalTTS(LocalTTSConfig{
		BinPath:   script,
		ModelPath: "voice.onnx",
		OutputDir: dir,
	})

	artifact, err := l.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "zh-tw"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if artifact.ContentType != "audio/wav" {
		t.Errorf("ContentType = %q, want audio/wav", artifact.ContentType)
	}
	if filepath.Ext(artifact.Path) != ".wav" {
		t.Errorf("Path = %q, want .wav extension", artifact.Path)
	}

	f, err := os.Open(artifact.Path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("artifact is not a valid wav file")
	}
	if dec.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("NumChans = %d, want 1", dec.NumChans)
	}
}

func TestWriteWAVRoundTrip(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767}
	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := writeWAV(path, pcm, 24000); err != nil {
		t.Fatalf("writeWAV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode wav: %v", err)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], s)
		}
	}
}
