package handlers

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/voicelab/voiceplatform/internal/apperr"
)

const maxEchoLength = 1000

type EchoHandler struct{}

func NewEchoHandler() *EchoHandler {
	return &EchoHandler{}
}

type echoRequest struct {
	Message string `json:"message"`
}

type echoResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Echo returns the posted message, for connectivity testing.
//
// @Summary  Echo a message
// @Tags     system
// @Accept   json
// @Produce  json
// @Param    message body handlers.echoRequest true "Message to echo"
// @Success  200 {object} handlers.echoResponse
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /echo [post]
func (h *EchoHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var req echoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if n := utf8.RuneCountInString(req.Message); n == 0 || n > maxEchoLength {
		writeError(w, apperr.Validation("message must be 1-%d characters", maxEchoLength))
		return
	}

	writeJSON(w, http.StatusOK, echoResponse{Message: req.Message, Timestamp: time.Now()})
}
