package tts

import (
	"regexp"

	"github.com/voicelab/voiceplatform/internal/apperr"
)

// MaxTextLength bounds the text accepted for one synthesis request.
const MaxTextLength = 5000

// Neutral prosody values applied when the caller omits a parameter.
const (
	DefaultRate   = "+0%"
	DefaultVolume = "+0%"
	DefaultPitch  = "+0Hz"
)

var (
	percentRe = regexp.MustCompile(`^[+-]\d+(\.\d+)?%$`)
	hertzRe   = regexp.MustCompile(`^[+-]\d+(\.\d+)?Hz$`)
)

// normalizeProsody fills in neutral defaults and validates that rate and
// volume are signed percentage strings ("+20%", "-10%") and pitch is a signed
// Hz offset string ("+50Hz").
func normalizeProsody(rate, volume, pitch string) (string, string, string, error) {
	if rate == "" {
		rate = DefaultRate
	}
	if volume == "" {
		volume = DefaultVolume
	}
	if pitch == "" {
		pitch = DefaultPitch
	}

	if !percentRe.MatchString(rate) {
		return "", "", "", apperr.Validation("invalid rate %q: expected a signed percentage like %q", rate, "+20%")
	}
	if !percentRe.MatchString(volume) {
		return "", "", "", apperr.Validation("invalid volume %q: expected a signed percentage like %q", volume, "-10%")
	}
	if !hertzRe.MatchString(pitch) {
		return "", "", "", apperr.Validation("invalid pitch %q: expected a signed Hz offset like %q", pitch, "+50Hz")
	}

	return rate, volume, pitch, nil
}
