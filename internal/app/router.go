package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/biztime/biztime/internal/platform/httpx"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	CompaniesHandler  Mounter
	IndustriesHandler Mounter
	InvoicesHandler   Mounter
}

// Mounter registers a handler's routes on a chi sub-router.
type Mounter interface {
	MountRoutes(r chi.Router)
}

// NewRouter constructs the chi.Router with biztime defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.CompaniesHandler != nil {
		r.Route("/companies", params.CompaniesHandler.MountRoutes)
	}
	if params.IndustriesHandler != nil {
		r.Route("/industries", params.IndustriesHandler.MountRoutes)
	}
	if params.InvoicesHandler != nil {
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
	}

	// chi's defaults answer in plain text; this is a JSON API.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	return r
}
