package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogger)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.listTasks)
			r.Post("/", h.createTask)
			r.Patch("/batch", h.batchUpdateTasks)
			r.Delete("/purge", h.purgeTasks)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getTask)
				r.Patch("/", h.updateTask)
				r.Delete("/", h.deleteTask)
				r.Post("/archive", h.archiveTask)
				r.Post("/unarchive", h.unarchiveTask)
				r.Get("/checkins", h.listCheckins)
				r.Post("/checkins", h.createCheckin)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
			r.Delete("/{id}", h.deleteCategory)
		})

		r.Get("/stats", h.stats)
		r.Get("/info", h.storageInfo)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.allSettings)
			r.Get("/sync", h.syncSettings)
			r.Put("/sync", h.setSyncSettings)
			r.Get("/ai", h.aiSettings)
			r.Put("/ai", h.setAISettings)
			r.Get("/app", h.appInfo)
			r.Get("/{section}", h.sectionSettings)
			r.Put("/{section}", h.setSectionSettings)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Get("/logs", h.syncLogs)
			r.Post("/test", h.testConnection)
			r.Post("/backup", h.backupNow)
			r.Post("/restore", h.restore)
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/export", h.exportData)
			r.Post("/import", h.importData)
		})
	})

	return router
}
