package handlers

import (
	"net/http"
	"time"
)

// Version reported by the health and root endpoints.
const Version = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health reports service liveness.
//
// @Summary  Health check
// @Tags     system
// @Produce  json
// @Success  200 {object} handlers.healthResponse
// @Router   /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   Version,
	})
}

// Root serves the service directory at "/".
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Welcome to Voice Platform API",
		"description": "Voice processing platform with text-to-speech and language detection services",
		"docs":        "/api/v1/docs",
		"version":     Version,
		"services": map[string]interface{}{
			"voice_synthesis": map[string]string{
				"/api/v1/tts/voices":            "Get all available TTS voices",
				"/api/v1/tts/voices/search":     "Search TTS voices by filters",
				"/api/v1/tts/synthesize":        "Convert text to speech (returns metadata)",
				"/api/v1/tts/synthesize/stream": "Convert text to speech (returns audio stream)",
			},
			"language_detection": map[string]string{
				"/api/v1/language/supported":         "Get supported languages for detection",
				"/api/v1/language/detect":            "Detect language of single text",
				"/api/v1/language/detect/batch":      "Batch detect languages for multiple texts",
				"/api/v1/language/detect/confidence": "Detect language with confidence score",
			},
		},
	})
}
