package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
)

// errorKindLabel maps taxonomy sentinels to the kind string rendered in the
// error payload.
func errorKindLabel(err error) string {
	switch {
	case errors.Is(err, apiclient.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, apiclient.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apiclient.ErrNotFound):
		return "not_found"
	case errors.Is(err, apiclient.ErrMethodNotAllowed):
		return "method_not_allowed"
	case errors.Is(err, apiclient.ErrTimeout):
		return "timeout"
	case errors.Is(err, apiclient.ErrTransport):
		return "transport_failure"
	case errors.Is(err, apiclient.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, apiclient.ErrRemote):
		return "remote_error"
	default:
		return "internal"
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apiclient.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, apiclient.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apiclient.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apiclient.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, apiclient.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, apiclient.ErrTransport),
		errors.Is(err, apiclient.ErrMalformedResponse),
		errors.Is(err, apiclient.ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError turns any failure into the structured error payload. Nothing
// thrown by the core reaches the caller as an unclassified 500.
func (c *Controller) RenderError(gctx *gin.Context, err error) {
	gctx.JSON(errorStatus(err), gin.H{
		"error": gin.H{
			"kind":    errorKindLabel(err),
			"message": err.Error(),
		},
	})
}
