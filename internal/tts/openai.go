package tts

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI speech backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // default: the public OpenAI API
	Model   string // default: "tts-1"
}

// OpenAIEngine synthesizes speech through the OpenAI speech API. Its voice
// set is fixed by the provider; prosody adjustments beyond the validated
// request format are not applied.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine creates an OpenAIEngine with defaults applied.
func NewOpenAIEngine(cfg OpenAIConfig) *OpenAIEngine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}
	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (o *OpenAIEngine) Name() string { return "openai" }

// The OpenAI speech API exposes a fixed, English-tagged voice set.
var openaiVoices = []Voice{
	{Name: "alloy", ShortName: "alloy", Gender: "Unknown", Locale: "en-US", Language: "en", FriendlyName: "Alloy"},
	{Name: "echo", ShortName: "echo", Gender: "Unknown", Locale: "en-US", Language: "en", FriendlyName: "Echo"},
	{Name: "fable", ShortName: "fable", Gender: "Unknown", Locale: "en-US", Language: "en", FriendlyName: "Fable"},
	{Name: "onyx", ShortName: "onyx", Gender: "Unknown", Locale: "en-US", Language: "en", FriendlyName: "Onyx"},
	{Name: "nova", ShortName: "nova", Gender: "Unknown", Locale: "en-US", Language: "en", FriendlyName: "Nova"},
	{Name: "shimmer", ShortName: "shimmer", Gender: "Unknown", Locale: "en-US", Language: "en", FriendlyName: "Shimmer"},
}

func (o *OpenAIEngine) Voices(_ context.Context) ([]Voice, error) {
	voices := make([]Voice, len(openaiVoices))
	copy(voices, openaiVoices)
	return voices, nil
}

// Synthesize converts text to MP3 audio and streams the response body.
func (o *OpenAIEngine) Synthesize(ctx context.Context, in SynthesisInput) (io.ReadCloser, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          in.Text,
		Voice:          openai.SpeechVoice(in.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	return resp, nil
}
