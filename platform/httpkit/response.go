// Package httpkit provides shared gin middleware and response helpers.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"exterior_chat_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON shape for error replies.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// OK sends a 200 with the payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error sends an error reply with the given status.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// HandleError writes an error response when err is non-nil. Typed domain
// errors pick their status from the Kind; anything else becomes a 400.
// Reports whether an error was written.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	return true
}
