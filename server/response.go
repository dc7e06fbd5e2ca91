// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-a2a/talentflow/flow"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ErrorEnvelope wraps an [APIError].
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes not derived from a flow kind.
const (
	CodeInvalidJSON  = "INVALID_JSON"
	CodeInvalidForm  = "INVALID_FORM"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL"
	CodeInvalidParam = "INVALID_PARAM"
)

// RespondError writes an error envelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondFlowError writes the envelope of a flow failure with the status of its kind.
func RespondFlowError(c *gin.Context, err error) {
	fe, ok := flow.AsError(err)
	if !ok {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.JSON(StatusOf(fe.Kind), ErrorEnvelope{
		Error: APIError{
			Message: fe.Message,
			Code:    string(fe.Kind),
			Field:   fe.Field,
		},
	})
}

// StatusOf maps a flow failure kind to an HTTP status.
func StatusOf(kind flow.Kind) int {
	switch kind {
	case flow.KindInvalidInput:
		return http.StatusBadRequest
	case flow.KindUnknownFlow:
		return http.StatusNotFound
	case flow.KindRateLimited:
		return http.StatusTooManyRequests
	case flow.KindEmptyModelOutput, flow.KindMalformedModelOutput:
		return http.StatusBadGateway
	case flow.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
