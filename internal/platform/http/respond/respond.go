// Package respond writes JSON error responses for feature handlers.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamflow_backend/internal/shared/apperr"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error maps err to its status code and writes it. Unknown errors are logged and reported as 500.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
	} else {
		slog.Warn("request rejected", "error", err, "status", status, "path", c.FullPath())
	}
	c.JSON(status, ErrorResponse{Error: apperr.Message(err)})
}

// BadRequest reports a binding or validation failure.
func BadRequest(c *gin.Context, err error) {
	slog.Warn("invalid request", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
