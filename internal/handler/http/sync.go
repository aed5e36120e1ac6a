package http

import (
	"net/http"
	"strconv"
)

func (h *Handler) syncLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.service.GetRecentSyncLogs(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) testConnection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.TestWebDAV(r.Context()))
}

func (h *Handler) backupNow(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.BackupNow(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RestoreFromRemote(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
