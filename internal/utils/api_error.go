package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/types"
	"go.uber.org/zap"
)

// RespondOK writes the success envelope.
func RespondOK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, types.OK(data))
}

// RespondError writes the error envelope with status.
func RespondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Success:   false,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrQueueFull):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// RespondServiceError logs err and writes the envelope for its status.
// Server-side failures hide the underlying error from the client.
func RespondServiceError(c *gin.Context, err error, message string) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		Zlog.Error(message,
			zap.String("path", c.FullPath()),
			zap.Error(err))
	} else {
		Zlog.Debug(message,
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}
	RespondError(c, status, message)
}
