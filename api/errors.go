// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// APIError represents a structured error response from the booking
// service. Callers can use errors.As to extract the structured
// information:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.Code == api.ErrCodeUnknownToken { ... }
//	}
type APIError struct {
	// Code is the service error code (e.g., "ERR_FORBIDDEN").
	Code string `json:"code"`
	// Message is the human-readable error description from the server.
	Message string `json:"message"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Standard booking-service error codes.
const (
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeUnknownToken = "ERR_UNKNOWN_TOKEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeEmailInUse   = "ERR_EMAIL_IN_USE"
	ErrCodeInvalidParam = "ERR_INVALID_PARAM"
	ErrCodeMissingParam = "ERR_MISSING_PARAM"
	ErrCodeUnknown      = "ERR_UNKNOWN"
)

// IsAPIError checks whether err is a *APIError with the given code.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
