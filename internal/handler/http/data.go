package http

import (
	"encoding/json"
	"net/http"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

func (h *Handler) exportData(w http.ResponseWriter, r *http.Request) {
	backup, err := h.service.ExportData(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, backup)
}

func (h *Handler) importData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var backup models.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		log.Err(err).Str("func", "*Handler.importData").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	report, err := h.service.ImportData(r.Context(), backup)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
