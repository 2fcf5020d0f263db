// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-auth-broker/internal/app"
	"github.com/MKhiriev/go-auth-broker/internal/service"
	"github.com/MKhiriev/go-auth-broker/internal/store"
	"github.com/MKhiriev/go-auth-broker/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
}

var messageErrors = map[string]error{
	app.MsgInvalidJSON:           ErrInvalidData,
	app.MsgInvalidDataProvided:   ErrInvalidData,
	app.MsgMissingToken:          ErrMissingToken,
	app.MsgAuthFailure:           ErrInvalidToken,
	app.MsgInvalidCredentials:    ErrInvalidCredentials,
	app.MsgNoTokenIssued:         ErrNoTokenIssued,
	app.MsgRoleNotPermitted:      ErrRoleNotPermitted,
	app.MsgUsernameAlreadyExists: ErrUsernameAlreadyExists,
}

// mapHTTPError returns nil for 2xx responses. Otherwise it wraps the
// status-level sentinel and, when the {"error": ...} body carries a known
// message, the matching domain sentinel as well.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := responseMessage(resp.Body())

	statusErr, ok := statusErrors[resp.StatusCode()]
	if !ok {
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode(), message)
	}

	if domainErr, ok := messageErrors[message]; ok {
		return fmt.Errorf("%w: %w", statusErr, domainErr)
	}
	if message == "" {
		return statusErr
	}
	return fmt.Errorf("%w: %s", statusErr, message)
}

// responseMessage extracts the error message from a JSON error body and
// falls back to the raw text.
func responseMessage(body []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return strings.TrimSpace(string(body))
}

// mapServiceError gives in-process calls the same error surface as remote
// ones. The order mirrors the server's status mapping.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidDataProvided):
		return fmt.Errorf("%w: %w", ErrBadRequest, ErrInvalidData)
	case errors.Is(err, service.ErrInvalidCredentials):
		return fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidCredentials)
	case errors.Is(err, service.ErrNoTokenIssued):
		return fmt.Errorf("%w: %w", ErrForbidden, ErrNoTokenIssued)
	case errors.Is(err, service.ErrRoleNotPermitted):
		return fmt.Errorf("%w: %w", ErrForbidden, ErrRoleNotPermitted)
	case errors.Is(err, store.ErrTokenNotFound):
		return fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return fmt.Errorf("%w: %w", ErrConflict, ErrUsernameAlreadyExists)
	default:
		return fmt.Errorf("%w: %w", ErrInternalServerError, err)
	}
}
