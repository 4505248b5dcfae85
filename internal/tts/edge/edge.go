// Package edge implements the tts.Engine interface against the Microsoft
// Edge read-aloud service: the voice catalog is fetched over HTTPS and
// synthesis runs over a WebSocket session carrying SSML in and length-prefixed
// audio frames out.
package edge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voicelab/voiceplatform/internal/tts"
)

const (
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	defaultVoiceListURL = "https://speech.platform.bing.com/consumer/speech/synthesize/readaloud/voices/list?trustedclienttoken=" + trustedClientToken
	defaultSynthesisURL = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1?TrustedClientToken=" + trustedClientToken

	outputFormat = "audio-24khz-48kbitrate-mono-mp3"

	// The service only answers requests that look like the Edge browser.
	origin    = "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36 Edg/130.0.0.0"

	defaultTimeout = 60 * time.Second
)

// Config holds the Edge endpoints and the per-call timeout. Zero values fall
// back to the public service defaults.
type Config struct {
	VoiceListURL string
	SynthesisURL string
	Timeout      time.Duration
}

// Engine talks to the Edge read-aloud service.
type Engine struct {
	cfg        Config
	httpClient *http.Client
	dialer     *websocket.Dialer
}

// New creates an Engine with defaults applied.
func New(cfg Config) *Engine {
	if cfg.VoiceListURL == "" {
		cfg.VoiceListURL = defaultVoiceListURL
	}
	if cfg.SynthesisURL == "" {
		cfg.SynthesisURL = defaultSynthesisURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Engine{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		dialer: &websocket.Dialer{
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

func (e *Engine) Name() string { return "edge" }

// voiceEntry matches the provider's voice list JSON.
type voiceEntry struct {
	Name         string `json:"Name"`
	ShortName    string `json:"ShortName"`
	Gender       string `json:"Gender"`
	Locale       string `json:"Locale"`
	FriendlyName string `json:"FriendlyName"`
}

// Voices fetches the current voice catalog. No caching: every call hits the
// provider.
func (e *Engine) Voices(ctx context.Context) ([]tts.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.VoiceListURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voice list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("voice list failed (status %d): %s", resp.StatusCode, string(body))
	}

	var entries []voiceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode voice list: %w", err)
	}

	voices := make([]tts.Voice, 0, len(entries))
	for _, v := range entries {
		voices = append(voices, tts.Voice{
			Name:         v.Name,
			ShortName:    v.ShortName,
			Gender:       v.Gender,
			Locale:       v.Locale,
			Language:     languageOf(v.Locale),
			FriendlyName: v.FriendlyName,
		})
	}
	return voices, nil
}

// languageOf derives the bare language code from a locale tag ("zh-CN" -> "zh").
func languageOf(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}
