package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public auth endpoints and the authenticated API.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		// Project endpoints
		r.Get("/projects", handlers.projectHandler.dashboard())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/projects/{projectID}/tags", handlers.projectHandler.replaceProjectTags())
		r.Post("/projects/{projectID}/tags/{tagID}", handlers.projectHandler.addProjectTag())
		r.Delete("/projects/{projectID}/tags/{tagID}", handlers.projectHandler.removeProjectTag())

		// Tag endpoints
		r.Get("/tags", handlers.tagHandler.getAllTags())
		r.Post("/tags", handlers.tagHandler.createTag())
		r.Put("/tags/{tagID}", handlers.tagHandler.updateTag())
		r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

		// Statistics endpoint
		r.Get("/statistics", handlers.statisticsHandler.getStatistics())

		// Export endpoints
		r.Get("/export/csv", handlers.exportHandler.exportCSV())
		r.Get("/export/html", handlers.exportHandler.exportHTML())
	})
}
