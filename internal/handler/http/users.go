// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

// register creates a base account and its role accounts.
// The response is the only place generated passwords are ever shown.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid registration request")
		return
	}

	user, err := h.services.AccountService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err, "user registration failed")
		return
	}

	log.Info().Int64("user_id", user.UserID).Int("role_accounts", len(user.Accounts)).Msg("user registered")
	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// login returns the session of a user previously authenticated with the base
// client. It never issues a token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, err, "invalid login request")
		return
	}

	session, err := h.services.TokenService.Login(ctx, creds)
	if err != nil {
		writeError(w, r, err, "login failed")
		return
	}

	log.Debug().Int64("user_id", session.UserID).Str("role", session.Role).Msg("user logged in")
	_, _ = utils.WriteJSON(w, session, http.StatusOK)
}
