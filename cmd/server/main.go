package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mchen-dev/memedubber/internal/api"
	"github.com/mchen-dev/memedubber/internal/caption"
	"github.com/mchen-dev/memedubber/internal/config"
	"github.com/mchen-dev/memedubber/internal/pipeline"
	"github.com/mchen-dev/memedubber/internal/tts"
	"github.com/mchen-dev/memedubber/internal/vision"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if cfg.TTS.OutputDir == "" {
		cfg.TTS.OutputDir = filepath.Join(os.TempDir(), "meme-audio")
	}

	provider, err := vision.New(cfg.Vision)
	if err != nil {
		slog.Error("failed to build vision provider", "error", err)
		os.Exit(1)
	}
	slog.Info("vision provider ready", "provider", provider.Name())

	extractor := caption.NewExtractor(provider)
	synths := map[tts.Backend]tts.Synthesizer{
		tts.BackendCloud: tts.NewGoogleTTS(tts.GoogleTTSConfig{
			BaseURL:   cfg.TTS.CloudBaseURL,
			OutputDir: cfg.TTS.OutputDir,
		}),
		tts.BackendLocal: tts.NewLocalTTS(tts.LocalTTSConfig{
			BinPath:    cfg.TTS.LocalBinPath,
			ModelPath:  cfg.TTS.LocalModel,
			SampleRate: cfg.TTS.SampleRate,
			OutputDir:  cfg.TTS.OutputDir,
		}),
	}
	orchestrator := pipeline.New(extractor, synths)

	router := api.NewRouter(cfg, orchestrator)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // a dub is two remote calls back to back
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting meme dubber", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
