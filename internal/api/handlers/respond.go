package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/voicelab/voiceplatform/internal/apperr"
)

// ErrorResponse is the structured JSON error body returned by every endpoint.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError translates a classified error into the JSON error body with the
// status from the taxonomy. Upstream and internal failures get logged with
// their cause; the client only sees the safe message.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUpstream || kind == apperr.KindInternal {
		slog.Error("request failed", "kind", kind.String(), "error", err)
	}
	writeJSON(w, apperr.HTTPStatus(err), ErrorResponse{
		Error:     kind.String(),
		Detail:    apperr.Message(err),
		Timestamp: time.Now(),
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}
