// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
)

// identity echoes the identity the access gate resolved for the request.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "identity handler reached without gate")
		return
	}

	_, _ = utils.WriteJSON(w, identity, http.StatusOK)
}

// revokeToken deletes the token presented with the request.
func (h *Handler) revokeToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoIdentity, "revoke handler reached without gate")
		return
	}

	if err := h.services.CredentialService.RevokeToken(ctx, identity.Token); err != nil {
		writeError(w, r, err, "token revocation failed")
		return
	}

	log.Info().Int64("user_id", identity.UserID).Str("role", identity.Role).Msg("token revoked")
	w.WriteHeader(http.StatusNoContent)
}
