// Package language wraps the lingua statistical language identifier behind a
// fixed 18-language support set with a documented English fallback for
// unclassifiable input.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/voicelab/voiceplatform/internal/apperr"
)

// FallbackCode is returned when the detector cannot classify the input.
// Detection degrades to this instead of failing.
const FallbackCode = "en"

// Info describes one supported language.
type Info struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// Result is one detection outcome. Confidence is present only when the
// caller asked for it.
type Result struct {
	Text         string   `json:"text"`
	Language     string   `json:"language"`
	LanguageName string   `json:"language_name"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// supported pins the detectable set and its response order.
var supported = []struct {
	lang lingua.Language
	info Info
}{
	{lingua.Chinese, Info{Code: "zh", Name: "Chinese", NativeName: "中文"}},
	{lingua.English, Info{Code: "en", Name: "English", NativeName: "English"}},
	{lingua.Spanish, Info{Code: "es", Name: "Spanish", NativeName: "Español"}},
	{lingua.Portuguese, Info{Code: "pt", Name: "Portuguese", NativeName: "Português"}},
	{lingua.Arabic, Info{Code: "ar", Name: "Arabic", NativeName: "العربية"}},
	{lingua.Russian, Info{Code: "ru", Name: "Russian", NativeName: "Русский"}},
	{lingua.French, Info{Code: "fr", Name: "French", NativeName: "Français"}},
	{lingua.German, Info{Code: "de", Name: "German", NativeName: "Deutsch"}},
	{lingua.Thai, Info{Code: "th", Name: "Thai", NativeName: "ไทย"}},
	{lingua.Vietnamese, Info{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"}},
	{lingua.Indonesian, Info{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia"}},
	{lingua.Malay, Info{Code: "ms", Name: "Malay", NativeName: "Bahasa Melayu"}},
	{lingua.Turkish, Info{Code: "tr", Name: "Turkish", NativeName: "Türkçe"}},
	{lingua.Italian, Info{Code: "it", Name: "Italian", NativeName: "Italiano"}},
	{lingua.Dutch, Info{Code: "nl", Name: "Dutch", NativeName: "Nederlands"}},
	{lingua.Polish, Info{Code: "pl", Name: "Polish", NativeName: "Polski"}},
	{lingua.Japanese, Info{Code: "ja", Name: "Japanese", NativeName: "日本語"}},
	{lingua.Korean, Info{Code: "ko", Name: "Korean", NativeName: "한국어"}},
}

// Detector identifies the language of short texts.
type Detector struct {
	detector lingua.LanguageDetector
	infos    map[lingua.Language]Info
	codes    map[string]struct{}
	ordered  []Info
}

// NewDetector builds a detector restricted to the supported set.
func NewDetector() *Detector {
	langs := make([]lingua.Language, 0, len(supported))
	infos := make(map[lingua.Language]Info, len(supported))
	codes := make(map[string]struct{}, len(supported))
	ordered := make([]Info, 0, len(supported))
	for _, s := range supported {
		langs = append(langs, s.lang)
		infos[s.lang] = s.info
		codes[s.info.Code] = struct{}{}
		ordered = append(ordered, s.info)
	}

	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
		infos:    infos,
		codes:    codes,
		ordered:  ordered,
	}
}

// Detect classifies one text. Empty or whitespace-only input is a validation
// error; input the detector cannot place degrades to the English fallback
// rather than failing.
func (d *Detector) Detect(text string, withConfidence bool) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, apperr.Validation("text cannot be empty")
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return d.fallback(text, withConfidence), nil
	}

	info := d.infos[lang]
	res := Result{Text: text, Language: info.Code, LanguageName: info.Name}
	if withConfidence {
		c := d.detector.ComputeLanguageConfidence(text, lang)
		res.Confidence = &c
	}
	return res, nil
}

// DetectBatch classifies each text independently and preserves input order
// and length exactly: results[i] answers texts[i]. A failing item (for
// example an empty string) yields the fallback result for that position; one
// bad item never aborts the batch.
func (d *Detector) DetectBatch(texts []string, withConfidence bool) ([]Result, error) {
	if len(texts) == 0 {
		return nil, apperr.Validation("texts list cannot be empty")
	}

	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		res, err := d.Detect(text, withConfidence)
		if err != nil {
			res = d.fallback(text, withConfidence)
		}
		results = append(results, res)
	}
	return results, nil
}

// SupportedLanguages returns the fixed support set in declaration order.
func (d *Detector) SupportedLanguages() []Info {
	out := make([]Info, len(d.ordered))
	copy(out, d.ordered)
	return out
}

// IsSupported reports whether a language code is in the support set.
func (d *Detector) IsSupported(code string) bool {
	_, ok := d.codes[code]
	return ok
}

func (d *Detector) fallback(text string, withConfidence bool) Result {
	res := Result{Text: text, Language: FallbackCode, LanguageName: "English"}
	if withConfidence {
		zero := 0.0
		res.Confidence = &zero
	}
	return res
}
