package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/voicelab/voiceplatform/internal/api"
	"github.com/voicelab/voiceplatform/internal/config"
	"github.com/voicelab/voiceplatform/internal/language"
	"github.com/voicelab/voiceplatform/internal/store"
	"github.com/voicelab/voiceplatform/internal/tts"
	"github.com/voicelab/voiceplatform/internal/tts/edge"
)

// @title       Voice Platform API
// @version     1.0.0
// @description Voice processing platform with text-to-speech and language detection services.
// @BasePath    /api/v1

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional; deployments usually set the environment directly.
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

	var engine tts.Engine
	switch cfg.TTS.Backend {
	case "openai":
		engine = tts.NewOpenAIEngine(tts.OpenAIConfig{
			APIKey:  cfg.TTS.OpenAIKey,
			BaseURL: cfg.TTS.OpenAIBaseURL,
			Model:   cfg.TTS.OpenAIModel,
		})
	default:
		engine = edge.New(edge.Config{
			VoiceListURL: cfg.TTS.EdgeVoiceListURL,
			SynthesisURL: cfg.TTS.EdgeSynthesisURL,
			Timeout:      cfg.TTS.Timeout,
		})
	}
	slog.Info("tts engine ready", "backend", engine.Name())

	detector := language.NewDetector()
	slog.Info("language detector ready", "languages", len(detector.SupportedLanguages()))

	// Setup router
	router := api.NewRouter(cfg, engine, detector, store.NewMemoryItems(), store.NewMemoryUsers())
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
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
