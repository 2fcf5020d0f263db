// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Routes are registered with their full paths on a
// single mux so CheckHTTPMethod can match them.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// routes without access gate
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)
		r.Post("/api/clients/authenticate", h.authenticateClient)
	})

	// any valid token
	router.Group(func(r chi.Router) {
		r.Use(h.validate)
		r.Get("/api/identity", h.identity)
		r.Delete("/api/tokens", h.revokeToken)
	})

	// admin roles only
	router.Group(func(r chi.Router) {
		r.Use(h.validateRole(h.adminRoles...))
		r.Post("/api/clients", h.registerClient)
		r.Get("/api/admin/identity", h.identity)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
