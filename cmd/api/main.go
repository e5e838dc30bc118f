package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"visionchat/internal/config"
	"visionchat/internal/http"
	"visionchat/internal/imageproc"
	"visionchat/internal/llm"
	"visionchat/internal/service"
	"visionchat/internal/web"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Image preprocessor
	compressor := imageproc.NewCompressor(cfg.MaxPixels)

	// Completion client (external service layer)
	client := llm.NewClient(cfg.APIURL, cfg.APIKey, cfg.Model, llm.Params{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.RequestTimeout,
	})

	chatService := service.NewChatService(client, compressor, cfg.SystemPrompt)

	// Render static pages once at startup
	pages, err := web.Render()
	if err != nil {
		log.Fatalf("Failed to render static pages: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		ChatService: chatService,
		Pages:       pages,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Provider configuration", "url", cfg.APIURL, "model", cfg.Model, "max_pixels", cfg.MaxPixels)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
