package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-crud-keeper/models"
)

// idParam restricts {id} to digits, so "/users/abc" is not routed at all.
const idParam = "/{id:[0-9]+}"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader},
		MaxAge:         300,
	}))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	adminOnly := []func(http.Handler) http.Handler{h.auth, h.requireRole(models.RoleAdmin)}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		// routes without authorization
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
		})

		r.Post("/user", h.createUser)
		r.Get("/users", h.listUsers)
		r.Get("/users"+idParam, h.getUser)
		r.Put("/users"+idParam, h.updateUser)

		r.Get("/items", h.listItems)
		r.Get("/items"+idParam, h.getItem)

		// admin routes
		r.Group(func(r chi.Router) {
			r.Use(adminOnly...)

			r.Delete("/users"+idParam, h.deleteUser)
			r.Post("/item", h.createItem)
			r.Put("/items"+idParam, h.updateItem)
			r.Delete("/items"+idParam, h.deleteItem)
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
