package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/till/internal/http/auth"
	"github.com/MrJamesThe3rd/till/internal/http/checkout"
	"github.com/MrJamesThe3rd/till/internal/http/importcsv"
	"github.com/MrJamesThe3rd/till/internal/http/inventory"
	"github.com/MrJamesThe3rd/till/internal/http/report"
	"github.com/MrJamesThe3rd/till/internal/http/settings"
	"github.com/MrJamesThe3rd/till/internal/http/settlement"
)

type Handlers struct {
	Inventory  *inventory.Handler
	Checkout   *checkout.Handler
	Settlement *settlement.Handler
	Settings   *settings.Handler
	Import     *importcsv.Handler
	Report     *report.Handler
}

func New(h Handlers, authenticator *auth.Authenticator, corsOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authenticator.Middleware)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Inventory.Routes(r)
			h.Checkout.Routes(r)
			h.Settlement.Routes(r)
			h.Settings.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("multipart/form-data"))
			h.Import.Routes(r)
		})

		h.Report.Routes(r)
	})

	return router
}
