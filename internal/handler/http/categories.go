package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createCheckin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var checkin models.HabitCheckin
	if err := json.NewDecoder(r.Body).Decode(&checkin); err != nil {
		log.Err(err).Str("func", "*Handler.createCheckin").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	checkin.TaskID = chi.URLParam(r, "id")

	created, err := h.service.CreateHabitCheckin(r.Context(), checkin)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// listCheckins reads the inclusive date range from start/end query params as
// epoch milliseconds; an absent range spans everything.
func (h *Handler) listCheckins(w http.ResponseWriter, r *http.Request) {
	start := queryInstant(r, "start", time.UnixMilli(0))
	end := queryInstant(r, "end", time.Now().Add(24*time.Hour))

	checkins, err := h.service.GetHabitCheckins(r.Context(), chi.URLParam(r, "id"), start, end)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if checkins == nil {
		checkins = []models.HabitCheckin{}
	}
	writeJSON(w, http.StatusOK, checkins)
}

func queryInstant(r *http.Request, name string, def time.Time) time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return time.UnixMilli(ms)
}
