package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", h.listProjects)
			r.Post("/", h.createProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", h.getProject)
				r.Put("/", h.updateProject)
				r.Delete("/", h.deleteProject)

				r.Get("/notes", h.listNotes)
				r.Post("/notes", h.createNote)
				r.Delete("/notes/{noteID}", h.deleteNote)

				r.Get("/photos", h.listPhotos)
				r.Post("/photos", h.uploadPhoto)
				r.Get("/photos/{photoID}/file", h.servePhotoFile)
				r.Delete("/photos/{photoID}", h.deletePhoto)
			})
		})

		r.Post("/api/upload", h.upload)

		r.Route("/api/media", func(r chi.Router) {
			r.Get("/", h.listMedia)

			r.Route("/{mediaID}", func(r chi.Router) {
				r.Get("/", h.getMedia)
				r.Get("/file", h.serveMediaFile)
				r.Get("/thumbnail", h.serveMediaThumbnail)
				r.Delete("/", h.deleteMedia)
			})
		})
	})

	return router
}
