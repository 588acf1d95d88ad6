package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/store"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write response", zap.Error(err))
	}
}

func (h *Handler) success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, h.log, http.StatusOK, Response{Status: "success", Data: data})
}

func (h *Handler) created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, h.log, http.StatusCreated, Response{Status: "success", Data: data})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string, detail interface{}) {
	writeJSON(w, h.log, http.StatusBadRequest, Response{Status: "error", Message: message, Error: detail})
}

// fail maps err onto a status code: validation failures are 400, unknown
// ids 404 and everything else 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var many journal.ValidationErrors
	var single *journal.ValidationError
	switch {
	case errors.As(err, &many):
		h.badRequest(w, "validation failed", many)
	case errors.As(err, &single):
		h.badRequest(w, "validation failed", journal.ValidationErrors{single})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, h.log, http.StatusNotFound, Response{Status: "error", Message: "not found"})
	default:
		h.log.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, h.log, http.StatusInternalServerError, Response{
			Status:  "error",
			Message: "internal error",
			Error:   err.Error(),
		})
	}
}
