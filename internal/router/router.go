// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// pagesmith API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pagesmith/internal/handlers"
	"pagesmith/internal/metrics"
	"pagesmith/internal/middleware"
)

// Handlers bundles the handler groups. Activity is nil when the activity
// log is disabled; Metrics may be nil.
type Handlers struct {
	Pages     *handlers.Pages
	Providers *handlers.Providers
	Activity  *handlers.Activity
	Metrics   *metrics.Metrics
	// GenerateLimit throttles page generation. Nil disables it.
	GenerateLimit *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(h.Metrics.Middleware)

	r.Get("/health", healthHandler)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/pages", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if h.GenerateLimit != nil {
					r.Use(h.GenerateLimit.Middleware)
				}
				r.Post("/", h.Pages.Create)
			})

			r.Route("/{draftID}", func(r chi.Router) {
				r.Get("/", h.Pages.Get)
				r.Delete("/", h.Pages.Discard)

				r.Put("/meta", h.Pages.UpdateMeta)
				r.Put("/colors", h.Pages.SetColors)
				r.Post("/colors/preset", h.Pages.ApplyPreset)

				r.Route("/sections", func(r chi.Router) {
					r.Post("/", h.Pages.AddSection)
					r.Post("/move", h.Pages.MoveSection)

					r.Route("/{sectionID}", func(r chi.Router) {
						r.Delete("/", h.Pages.DeleteSection)
						r.Post("/toggle", h.Pages.ToggleSection)
						r.Put("/content", h.Pages.UpdateContent)
						r.Put("/name", h.Pages.RenameSection)
						r.Post("/duplicate", h.Pages.DuplicateSection)

						r.Post("/items/{list}", h.Pages.InsertItem)
						r.Patch("/items/{list}/{index}", h.Pages.UpdateItem)
						r.Delete("/items/{list}/{index}", h.Pages.RemoveItem)
					})
				})

				r.Get("/preview", h.Pages.Preview)
				r.Get("/export/{format}", h.Pages.Export)
				r.Post("/publish/{format}", h.Pages.Publish)
				r.Get("/share", h.Pages.Share)
				r.Get("/share/qr.png", h.Pages.ShareQR)
			})
		})

		r.Get("/ai/providers", h.Providers.Status)
		r.Put("/ai/provider", h.Providers.Switch)

		if h.Activity != nil {
			r.Get("/activity", h.Activity.List)
		}
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
