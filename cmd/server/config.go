package main

import (
	"fmt"
	"os"
	"strings"
)

// Config carries server settings loaded from the environment.
type Config struct {
	Addr        string
	Provider    string
	Model       string
	DatabaseURL string
	Environment string
}

func loadConfig() (Config, error) {
	cfg := Config{
		Addr:        envOr("ADDR", ":8080"),
		Provider:    envOr("LLM_PROVIDER", "gemini"),
		Model:       os.Getenv("LLM_MODEL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Environment: envOr("ENVIRONMENT", "development"),
	}

	if !strings.HasPrefix(cfg.Addr, ":") && !strings.Contains(cfg.Addr, ":") {
		return Config{}, fmt.Errorf("invalid ADDR %q, expected host:port or :port", cfg.Addr)
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
