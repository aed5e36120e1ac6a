package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

func (h *Handler) allSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Settings().GetAll())
}

func (h *Handler) appInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Settings().GetAppInfo())
}

func (h *Handler) syncSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Settings().GetSyncSettings())
}

func (h *Handler) setSyncSettings(w http.ResponseWriter, r *http.Request) {
	update, ok := h.decodeSectionUpdate(w, r, "*Handler.setSyncSettings")
	if !ok {
		return
	}
	if err := h.service.Settings().SetSyncSettings(update); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) aiSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.service.Settings().GetAISettings()
	// The key itself stays local; the UI only needs to know one is set.
	settings.APIKey = ""
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) setAISettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var update models.AISettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.setAISettings").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.service.Settings().SetAISettings(update); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sectionSettings(w http.ResponseWriter, r *http.Request) {
	var section map[string]any

	switch chi.URLParam(r, "section") {
	case "ui":
		section = h.service.Settings().GetUISettings()
	case "notifications":
		section = h.service.Settings().GetNotificationSettings()
	case "features":
		section = h.service.Settings().GetFeatureSettings()
	case "preferences":
		section = h.service.Settings().GetUserPreferences()
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown settings section"})
		return
	}

	writeJSON(w, http.StatusOK, section)
}

func (h *Handler) setSectionSettings(w http.ResponseWriter, r *http.Request) {
	update, ok := h.decodeSectionUpdate(w, r, "*Handler.setSectionSettings")
	if !ok {
		return
	}

	var err error
	switch chi.URLParam(r, "section") {
	case "ui":
		err = h.service.Settings().SetUISettings(update)
	case "notifications":
		err = h.service.Settings().SetNotificationSettings(update)
	case "features":
		err = h.service.Settings().SetFeatureSettings(update)
	case "preferences":
		err = h.service.Settings().SetUserPreferences(update)
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown settings section"})
		return
	}

	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeSectionUpdate(w http.ResponseWriter, r *http.Request, fn string) (map[string]any, bool) {
	var update map[string]any
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return nil, false
	}
	return update, true
}
