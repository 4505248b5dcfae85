package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/voicelab/voiceplatform/internal/tts"
)

type TTSHandler struct {
	svc *tts.Service
}

func NewTTSHandler(svc *tts.Service) *TTSHandler {
	return &TTSHandler{svc: svc}
}

type voicesResponse struct {
	Voices     []tts.Voice `json:"voices"`
	TotalCount int         `json:"total_count"`
}

type voiceSearchRequest struct {
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Limit    *int   `json:"limit,omitempty"`
}

type voiceSearchResponse struct {
	Voices         []tts.Voice       `json:"voices"`
	TotalCount     int               `json:"total_count"`
	FilteredCount  int               `json:"filtered_count"`
	FiltersApplied map[string]string `json:"filters_applied"`
}

type synthesizeRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Rate   string `json:"rate,omitempty"`
	Volume string `json:"volume,omitempty"`
	Pitch  string `json:"pitch,omitempty"`
}

// Voices lists every voice the provider currently offers.
//
// @Summary  List available TTS voices
// @Tags     tts
// @Produce  json
// @Success  200 {object} handlers.voicesResponse
// @Failure  502 {object} handlers.ErrorResponse
// @Router   /tts/voices [get]
func (h *TTSHandler) Voices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.svc.ListVoices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voicesResponse{Voices: voices, TotalCount: len(voices)})
}

// SearchVoices filters the catalog by language, locale, gender, and limit.
//
// @Summary  Search TTS voices by filters
// @Tags     tts
// @Accept   json
// @Produce  json
// @Param    filters body handlers.voiceSearchRequest true "Search criteria; all supplied filters must match"
// @Success  200 {object} handlers.voiceSearchResponse
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  502 {object} handlers.ErrorResponse
// @Router   /tts/voices/search [post]
func (h *TTSHandler) SearchVoices(w http.ResponseWriter, r *http.Request) {
	var req voiceSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	filter := tts.VoiceFilter{
		Language: req.Language,
		Locale:   req.Locale,
		Gender:   req.Gender,
		Limit:    req.Limit,
	}

	voices, total, err := h.svc.SearchVoices(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	applied := map[string]string{}
	if req.Language != "" {
		applied["language"] = req.Language
	}
	if req.Locale != "" {
		applied["locale"] = req.Locale
	}
	if req.Gender != "" {
		applied["gender"] = req.Gender
	}

	writeJSON(w, http.StatusOK, voiceSearchResponse{
		Voices:         voices,
		TotalCount:     total,
		FilteredCount:  len(voices),
		FiltersApplied: applied,
	})
}

// Synthesize converts text to speech and reports synthesis metadata.
//
// @Summary  Synthesize speech (metadata)
// @Tags     tts
// @Accept   json
// @Produce  json
// @Param    request body handlers.synthesizeRequest true "Text, voice, and optional prosody parameters"
// @Success  200 {object} tts.Metadata
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  404 {object} handlers.ErrorResponse
// @Failure  502 {object} handlers.ErrorResponse
// @Router   /tts/synthesize [post]
func (h *TTSHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	meta, err := h.svc.Synthesize(r.Context(), tts.SynthesisRequest{
		Text:   req.Text,
		Voice:  req.Voice,
		Rate:   req.Rate,
		Volume: req.Volume,
		Pitch:  req.Pitch,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meta)
}

// SynthesizeStream converts text to speech and streams the MP3 bytes.
//
// @Summary  Synthesize speech (audio stream)
// @Tags     tts
// @Accept   json
// @Produce  audio/mpeg
// @Param    request body handlers.synthesizeRequest true "Text, voice, and optional prosody parameters"
// @Success  200 {file} binary
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  404 {object} handlers.ErrorResponse
// @Failure  502 {object} handlers.ErrorResponse
// @Router   /tts/synthesize/stream [post]
func (h *TTSHandler) SynthesizeStream(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	stream, err := h.svc.SynthesizeStream(r.Context(), tts.SynthesisRequest{
		Text:   req.Text,
		Voice:  req.Voice,
		Rate:   req.Rate,
		Volume: req.Volume,
		Pitch:  req.Pitch,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", tts.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="speech.mp3"`)
	w.WriteHeader(http.StatusOK)

	out := io.Writer(w)
	if f, ok := w.(http.Flusher); ok {
		out = flushWriter{w: w, f: f}
	}
	if _, err := io.Copy(out, stream); err != nil {
		// Headers are already committed; the client sees a truncated stream.
		slog.Warn("audio stream aborted", "error", err)
	}
}

// flushWriter flushes after each engine chunk so the client receives audio
// incrementally instead of at buffer boundaries.
type flushWriter struct {
	w http.ResponseWriter
	f http.Flusher
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	fw.f.Flush()
	return n, err
}
