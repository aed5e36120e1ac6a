package http

import (
	"encoding/json"
	"net/http"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/internal/service"
)

type Handler struct {
	service *service.StorageService

	logger *logger.Logger
}

func NewHandler(service *service.StorageService, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).
		Str("uri", r.RequestURI).
		Str("method", r.Method).
		Msg("request failed")

	writeJSON(w, statusFromError(err), errorResponse{Error: err.Error()})
}
