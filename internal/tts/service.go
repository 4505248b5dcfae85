package tts

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/voicelab/voiceplatform/internal/apperr"
)

// ContentType of all synthesized audio.
const ContentType = "audio/mpeg"

// Engines emit 48 kbit/s mono MP3, which gives the duration estimate for
// metadata responses.
const bitrateBitsPerSecond = 48000

// VoiceFilter narrows a catalog search. All supplied criteria must match;
// language and locale comparisons are case-insensitive. A nil Limit returns
// every match.
type VoiceFilter struct {
	Language string
	Locale   string
	Gender   string
	Limit    *int
}

// IsZero reports whether no criteria were supplied.
func (f VoiceFilter) IsZero() bool {
	return f.Language == "" && f.Locale == "" && f.Gender == "" && f.Limit == nil
}

// SynthesisRequest holds the caller-supplied synthesis parameters before
// validation. Empty prosody fields default to neutral values.
type SynthesisRequest struct {
	Text   string
	Voice  string
	Rate   string
	Volume string
	Pitch  string
}

// Parameters echoes the effective synthesis parameters in metadata responses.
type Parameters struct {
	TextLength int    `json:"text_length"`
	Rate       string `json:"rate"`
	Volume     string `json:"volume"`
	Pitch      string `json:"pitch"`
}

// Metadata describes a completed synthesis without exposing the audio bytes.
type Metadata struct {
	VoiceUsed       string     `json:"voice_used"`
	ContentType     string     `json:"content_type"`
	AudioSize       int        `json:"audio_size"`
	DurationSeconds float64    `json:"duration_seconds"`
	Parameters      Parameters `json:"parameters"`
}

// Service validates requests and delegates to the configured engine. It holds
// no state across requests: every catalog lookup hits the provider fresh.
type Service struct {
	engine Engine
}

func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

// ListVoices returns the provider's current voice catalog in provider order.
func (s *Service) ListVoices(ctx context.Context) ([]Voice, error) {
	voices, err := s.engine.Voices(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch voice catalog", err)
	}
	return voices, nil
}

// SearchVoices filters the current catalog by f and returns the matches plus
// the unfiltered catalog size.
func (s *Service) SearchVoices(ctx context.Context, f VoiceFilter) ([]Voice, int, error) {
	if f.Limit != nil && *f.Limit <= 0 {
		return nil, 0, apperr.Validation("limit must be a positive integer, got %d", *f.Limit)
	}

	voices, err := s.ListVoices(ctx)
	if err != nil {
		return nil, 0, err
	}

	matches := make([]Voice, 0, len(voices))
	for _, v := range voices {
		if !matchesFilter(v, f) {
			continue
		}
		matches = append(matches, v)
	}

	if f.Limit != nil && len(matches) > *f.Limit {
		matches = matches[:*f.Limit]
	}
	return matches, len(voices), nil
}

func matchesFilter(v Voice, f VoiceFilter) bool {
	if f.Language != "" && !strings.EqualFold(v.Language, f.Language) {
		return false
	}
	if f.Locale != "" && !strings.EqualFold(v.Locale, f.Locale) {
		return false
	}
	if f.Gender != "" && !strings.EqualFold(v.Gender, f.Gender) {
		return false
	}
	return true
}

// Synthesize runs one synthesis call and reports its metadata. The audio is
// fully drained to measure size and estimate duration.
func (s *Service) Synthesize(ctx context.Context, req SynthesisRequest) (*Metadata, error) {
	in, voice, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	stream, err := s.engine.Synthesize(ctx, in)
	if err != nil {
		return nil, apperr.Upstream("speech synthesis failed", err)
	}
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	if err != nil {
		return nil, apperr.Upstream("reading synthesized audio failed", err)
	}
	if len(audio) == 0 {
		return nil, apperr.Upstream("engine produced no audio", nil)
	}

	return &Metadata{
		VoiceUsed:       voice.ShortName,
		ContentType:     ContentType,
		AudioSize:       len(audio),
		DurationSeconds: float64(len(audio)*8) / bitrateBitsPerSecond,
		Parameters: Parameters{
			TextLength: utf8.RuneCountInString(req.Text),
			Rate:       in.Rate,
			Volume:     in.Volume,
			Pitch:      in.Pitch,
		},
	}, nil
}

// SynthesizeStream runs one synthesis call and returns the raw MP3 stream.
// The caller must close it; abandoning it mid-read closes the engine side.
func (s *Service) SynthesizeStream(ctx context.Context, req SynthesisRequest) (io.ReadCloser, error) {
	in, _, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	stream, err := s.engine.Synthesize(ctx, in)
	if err != nil {
		return nil, apperr.Upstream("speech synthesis failed", err)
	}
	return stream, nil
}

// prepare validates text and prosody, then resolves the requested voice
// against a fresh catalog fetch. The engine's own invalid-voice error is not
// descriptive, so the catalog check happens here.
func (s *Service) prepare(ctx context.Context, req SynthesisRequest) (SynthesisInput, Voice, error) {
	if strings.TrimSpace(req.Text) == "" {
		return SynthesisInput{}, Voice{}, apperr.Validation("text cannot be empty")
	}
	if utf8.RuneCountInString(req.Text) > MaxTextLength {
		return SynthesisInput{}, Voice{}, apperr.Validation("text exceeds maximum length of %d characters", MaxTextLength)
	}

	rate, volume, pitch, err := normalizeProsody(req.Rate, req.Volume, req.Pitch)
	if err != nil {
		return SynthesisInput{}, Voice{}, err
	}

	voice, err := s.resolveVoice(ctx, req.Voice)
	if err != nil {
		return SynthesisInput{}, Voice{}, err
	}

	return SynthesisInput{
		Text:   req.Text,
		Voice:  voice.ShortName,
		Rate:   rate,
		Volume: volume,
		Pitch:  pitch,
	}, voice, nil
}

func (s *Service) resolveVoice(ctx context.Context, name string) (Voice, error) {
	if name == "" {
		return Voice{}, apperr.Validation("voice is required")
	}

	voices, err := s.ListVoices(ctx)
	if err != nil {
		return Voice{}, err
	}
	for _, v := range voices {
		if v.Name == name || v.ShortName == name {
			return v, nil
		}
	}
	return Voice{}, apperr.NotFound("voice %q not found in the current catalog", name)
}
