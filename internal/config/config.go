package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates the service configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Upstream UpstreamConfig
	Relay    RelayConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// StorageConfig locates the durable store.
type StorageConfig struct {
	Path string
}

// UpstreamConfig describes the chat-completions provider.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration
}

// RelayConfig tunes the relay surface.
type RelayConfig struct {
	// Fallback masks upstream failures with a canned reply instead of a
	// 502. Off by default so failure stays explicit.
	Fallback bool
}

// Enabled reports whether the upstream credentials are configured.
func (c UpstreamConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("UPSTREAM_TIMEOUT"); err != nil {
		return nil, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	fallback, err := parseBoolEnv("RELAY_FALLBACK", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Storage: StorageConfig{
			Path: getEnvOrDefault("DATA_PATH", "botforge.db"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnvOrDefault("UPSTREAM_BASE_URL", "https://openrouter.ai/api/v1"),
			APIKey:  strings.TrimSpace(os.Getenv("UPSTREAM_API_KEY")),
			Model:   getEnvOrDefault("UPSTREAM_MODEL", "mistralai/mistral-7b-instruct"),
			Referer: getEnvOrDefault("UPSTREAM_REFERER", "http://localhost:8080"),
			Title:   getEnvOrDefault("UPSTREAM_TITLE", "BotForge"),
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		Relay: RelayConfig{Fallback: fallback},
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
