package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGoogleTTSSynthesize(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-fake-mp3-frames"))
	}))
	defer srv.Close()

	g := NewGoogleTTS(GoogleTTSConfig{BaseURL: srv.URL, OutputDir: t.TempDir()})

	artifact, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "ja"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if gotQuery.Get("q") != "lol" {
		t.Errorf("q = %q, want lol", gotQuery.Get("q"))
	}
	if gotQuery.Get("tl") != "ja" {
		t.Errorf("tl = %q, want ja", gotQuery.Get("tl"))
	}

	if artifact.ContentType != "audio/mpeg" {
		t.Errorf("ContentType = %q, want audio/mpeg", artifact.ContentType)
	}
	if filepath.Ext(artifact.Path) != ".mp3" {
		t.Errorf("Path = %q, want .mp3 extension", artifact.Path)
	}

	// File exists and is non-empty immediately after the call returns.
	info, err := os.Stat(artifact.Path)
	if err != nil {
		t.Fatalf("stat artifact: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact file is empty")
	}

	// Each invocation gets its own path.
	second, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "ja"})
	if err != nil {
		t.Fatalf("second Synthesize: %v", err)
	}
	if second.Path == artifact.Path {
		t.Errorf("both invocations wrote %q, want unique paths", artifact.Path)
	}
}

func TestGoogleTTSErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		g := NewGoogleTTS(GoogleTTSConfig{OutputDir: t.TempDir()})
		if _, err := g.Synthesize(context.Background(), SynthesisRequest{LanguageCode: "en"}); err == nil {
			t.Fatal("expected error for empty text")
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unsupported language", http.StatusBadRequest)
		}))
		defer srv.Close()

		g := NewGoogleTTS(GoogleTTSConfig{BaseURL: srv.URL, OutputDir: t.TempDir()})
		_, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "xx"})
		if err == nil || !strings.Contains(err.Error(), "status 400") {
			t.Fatalf("error = %v, want status 400", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		g := NewGoogleTTS(GoogleTTSConfig{BaseURL: srv.URL, OutputDir: t.TempDir()})
		if _, err := g.Synthesize(context.Background(), SynthesisRequest{Text: "lol", LanguageCode: "en"}); err == nil {
			t.Fatal("expected error for empty audio body")
		}
	})
}
