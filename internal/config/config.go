package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultSystemPrompt steers the vision model. It is sent as the system turn
// on text conversations and folded into the user turn on image requests.
const defaultSystemPrompt = `You are a highly capable AI assistant with advanced vision capabilities.
Your task is to analyze images and respond to queries about them with detailed, accurate,
and insightful information. When describing images, focus on key elements, colors, composition,
and any notable features. For questions about the image, provide comprehensive answers drawing
from your vast knowledge base. Always strive for clarity, precision, and depth in your responses.
Avoid mentioning OPEN AI, models, or large language model in your response
`

// Config holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	APIKey         string
	APIURL         string
	Model          string
	SystemPrompt   string
	MaxPixels      int
	Temperature    float64
	MaxTokens      int
	RequestTimeout time.Duration
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIKey:       os.Getenv("DEEPINFRA_API_KEY"),
		APIURL:       getEnv("DEEPINFRA_API_URL", "https://api.deepinfra.com/v1/openai/chat/completions"),
		Model:        getEnv("MODEL", "meta-llama/Llama-3.2-11B-Vision-Instruct"),
		SystemPrompt: getEnv("SYSTEM_PROMPT", defaultSystemPrompt),
		APIPort:      getEnv("API_PORT", "9000"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("DEEPINFRA_API_KEY is required")
	}

	maxPixels, err := intEnv("MAX_PIXELS", 1700000)
	if err != nil {
		return nil, err
	}
	if maxPixels <= 0 {
		return nil, fmt.Errorf("MAX_PIXELS must be greater than 0")
	}
	cfg.MaxPixels = maxPixels

	maxTokens, err := intEnv("MAX_TOKENS", 400)
	if err != nil {
		return nil, err
	}
	cfg.MaxTokens = maxTokens

	temperature, err := floatEnv("TEMPERATURE", 0.4)
	if err != nil {
		return nil, err
	}
	cfg.Temperature = temperature

	timeoutSeconds, err := intEnv("REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	if timeoutSeconds <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be greater than 0")
	}
	cfg.RequestTimeout = time.Duration(timeoutSeconds) * time.Second

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// intEnv parses an integer environment variable or returns a default value.
func intEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

// floatEnv parses a float environment variable or returns a default value.
func floatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return parsed, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}
