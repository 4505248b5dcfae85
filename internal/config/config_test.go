package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicelab/voiceplatform/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TTS_BACKEND", "")
	t.Setenv("TTS_TIMEOUT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "edge", cfg.TTS.Backend)
	assert.Equal(t, 60*time.Second, cfg.TTS.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TTS_BACKEND", "openai")
	t.Setenv("TTS_TIMEOUT", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "openai", cfg.TTS.Backend)
	assert.Equal(t, 30*time.Second, cfg.TTS.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{TTS: config.TTSConfig{Backend: "edge"}}
	assert.NoError(t, cfg.Validate())

	cfg = &config.Config{TTS: config.TTSConfig{Backend: "openai"}}
	assert.Error(t, cfg.Validate())

	cfg = &config.Config{TTS: config.TTSConfig{Backend: "openai", OpenAIKey: "sk-test"}}
	assert.NoError(t, cfg.Validate())

	cfg = &config.Config{TTS: config.TTSConfig{Backend: "piper"}}
	assert.Error(t, cfg.Validate())
}
