// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/MKhiriev/go-auth-broker/models"
)

// authenticateClient issues (or returns the live) token letting a client act
// on behalf of a user.
func (h *Handler) authenticateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AuthenticateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid client authentication request")
		return
	}

	token, err := h.services.TokenService.AuthenticateClient(ctx, req)
	if err != nil {
		writeError(w, r, err, "client authentication failed")
		return
	}

	log.Info().Int64("user_id", token.UserID).Int64("client_id", token.ClientID).Str("role", token.Role).Msg("client authenticated")
	_, _ = utils.WriteJSON(w, models.TokenResponse{Token: token.Token}, http.StatusOK)
}

// registerClient upserts a client application. Gated by validateRole.
func (h *Handler) registerClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid client registration request")
		return
	}

	client, err := h.services.CredentialService.CreateClient(ctx, req.Name, req.Secret)
	if err != nil {
		writeError(w, r, err, "client registration failed")
		return
	}

	log.Info().Int64("client_id", client.ClientID).Str("client", client.Name).Msg("client registered")
	_, _ = utils.WriteJSON(w, client, http.StatusCreated)
}
