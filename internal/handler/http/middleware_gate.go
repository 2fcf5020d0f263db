// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-auth-broker/internal/app"
	"github.com/MKhiriev/go-auth-broker/internal/logger"
	"github.com/MKhiriev/go-auth-broker/internal/metrics"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/internal/utils"
	"github.com/rs/zerolog"
)

// tokenQueryParam is checked before the Authorization header.
const tokenQueryParam = "token"

// validate is the access gate for routes open to any authenticated caller.
//
// The token is read from the "token" query parameter, falling back to an
// "Authorization: Bearer" header. On success the resolved [models.Identity]
// is stored in the request context under [utils.IdentityCtxKey].
//
// Rejections:
//   - 400 "Authentication failure, missing token" when no token is presented.
//   - 401 "Authentication failure" when the token is unknown or expired.
func (h *Handler) validate(next http.Handler) http.Handler {
	return h.gate(next, false, nil)
}

// validateRole behaves like validate and additionally answers 403
// "role not permitted" when the identity's role is not in allowed. An empty
// allowed set admits nobody.
func (h *Handler) validateRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return h.gate(next, true, allowed)
	}
}

func (h *Handler) gate(next http.Handler, restricted bool, allowed []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		token := tokenFromRequest(r)
		if token == "" {
			h.metrics.RecordGateDecision(metrics.DecisionMissingToken)
			writeError(w, r, ErrMissingToken, "request without token")
			return
		}

		identity, err := h.services.CredentialService.ValidateToken(ctx, token)
		if err != nil {
			if errors.Is(err, store.ErrTokenNotFound) {
				h.metrics.RecordGateDecision(metrics.DecisionInvalidToken)
				log.Debug().Err(err).Str("func", "*Handler.gate").Msg("token rejected")
				utils.WriteError(w, app.MsgAuthFailure, http.StatusUnauthorized)
				return
			}
			h.metrics.RecordGateDecision(metrics.DecisionError)
			writeError(w, r, err, "token validation failed")
			return
		}

		if restricted && !slices.Contains(allowed, identity.Role) {
			h.metrics.RecordGateDecision(metrics.DecisionRoleDenied)
			log.Info().Err(service.ErrRoleNotPermitted).Int64("user_id", identity.UserID).Str("role", identity.Role).Msg("role rejected")
			utils.WriteError(w, app.MsgRoleNotPermitted, http.StatusForbidden)
			return
		}

		h.metrics.RecordGateDecision(metrics.DecisionAllowed)

		// downstream log entries carry the caller
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", identity.UserID).Str("identity_role", identity.Role)
		})
		ctx = log.WithContext(utils.WithIdentity(ctx, identity))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest returns the presented token or "" when there is none. A
// malformed Authorization header counts as no token.
func tokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get(tokenQueryParam); token != "" {
		return token
	}

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}
	return token
}
