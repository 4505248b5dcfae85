package handlers

import (
	"net/http"

	"github.com/voicelab/voiceplatform/internal/language"
)

type LanguageHandler struct {
	detector *language.Detector
}

func NewLanguageHandler(detector *language.Detector) *LanguageHandler {
	return &LanguageHandler{detector: detector}
}

type supportedLanguagesResponse struct {
	Languages  []language.Info `json:"languages"`
	TotalCount int             `json:"total_count"`
}

type detectRequest struct {
	Text           string `json:"text"`
	WithConfidence bool   `json:"with_confidence,omitempty"`
}

type detectBatchRequest struct {
	Texts          []string `json:"texts"`
	WithConfidence bool     `json:"with_confidence,omitempty"`
}

type detectBatchResponse struct {
	Results    []language.Result `json:"results"`
	TotalCount int               `json:"total_count"`
}

// Supported lists the fixed language support set.
//
// @Summary  List supported detection languages
// @Tags     language
// @Produce  json
// @Success  200 {object} handlers.supportedLanguagesResponse
// @Router   /language/supported [get]
func (h *LanguageHandler) Supported(w http.ResponseWriter, r *http.Request) {
	langs := h.detector.SupportedLanguages()
	writeJSON(w, http.StatusOK, supportedLanguagesResponse{Languages: langs, TotalCount: len(langs)})
}

// Detect identifies the language of a single text.
//
// @Summary  Detect the language of a text
// @Tags     language
// @Accept   json
// @Produce  json
// @Param    request body handlers.detectRequest true "Text to classify"
// @Success  200 {object} language.Result
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /language/detect [post]
func (h *LanguageHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.detector.Detect(req.Text, req.WithConfidence)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DetectBatch identifies languages for an ordered list of texts. Results
// preserve input order and length; a failing item degrades to the fallback
// language instead of aborting the batch.
//
// @Summary  Detect languages for a batch of texts
// @Tags     language
// @Accept   json
// @Produce  json
// @Param    request body handlers.detectBatchRequest true "Texts to classify, in order"
// @Success  200 {object} handlers.detectBatchResponse
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /language/detect/batch [post]
func (h *LanguageHandler) DetectBatch(w http.ResponseWriter, r *http.Request) {
	var req detectBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	results, err := h.detector.DetectBatch(req.Texts, req.WithConfidence)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detectBatchResponse{Results: results, TotalCount: len(results)})
}

// DetectConfidence identifies the language of a text with the confidence
// score always populated.
//
// @Summary  Detect the language of a text with confidence
// @Tags     language
// @Accept   json
// @Produce  json
// @Param    request body handlers.detectRequest true "Text to classify"
// @Success  200 {object} language.Result
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /language/detect/confidence [post]
func (h *LanguageHandler) DetectConfidence(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.detector.Detect(req.Text, true)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
