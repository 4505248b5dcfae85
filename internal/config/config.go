package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	TTS    TTSConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type TTSConfig struct {
	Backend string // "edge" or "openai"
	Timeout time.Duration

	EdgeVoiceListURL string // override for tests/proxies; empty uses the public endpoint
	EdgeSynthesisURL string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	timeout, err := getEnvDuration("TTS_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        port,
			CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		},
		TTS: TTSConfig{
			Backend:          getEnv("TTS_BACKEND", "edge"),
			Timeout:          timeout,
			EdgeVoiceListURL: getEnv("TTS_EDGE_VOICE_LIST_URL", ""),
			EdgeSynthesisURL: getEnv("TTS_EDGE_SYNTHESIS_URL", ""),
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("TTS_OPENAI_BASE_URL", ""),
			OpenAIModel:      getEnv("TTS_OPENAI_MODEL", ""),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	switch c.TTS.Backend {
	case "edge":
	case "openai":
		if c.TTS.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when TTS_BACKEND=openai")
		}
	default:
		return fmt.Errorf("unknown TTS_BACKEND %q (expected \"edge\" or \"openai\")", c.TTS.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
