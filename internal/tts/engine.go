// Package tts orchestrates text-to-speech: voice catalog search, request
// validation, and synthesis via a pluggable engine backend.
package tts

import (
	"context"
	"io"
)

// Voice is a named, locale-tagged speaker profile offered by the engine.
type Voice struct {
	Name         string `json:"name"`
	ShortName    string `json:"short_name"`
	Gender       string `json:"gender"`
	Locale       string `json:"locale"`
	Language     string `json:"language"`
	FriendlyName string `json:"display_name"`
}

// SynthesisInput holds the engine-level parameters for one synthesis call.
// Rate, Volume and Pitch are already validated prosody strings.
type SynthesisInput struct {
	Text   string
	Voice  string
	Rate   string
	Volume string
	Pitch  string
}

// Engine is the interface for text-to-speech backends. Synthesize returns an
// MP3 byte stream; the caller must close it.
type Engine interface {
	Voices(ctx context.Context) ([]Voice, error)
	Synthesize(ctx context.Context, in SynthesisInput) (io.ReadCloser, error)
	Name() string
}
