package api

import (
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Constants for context keys
const (
	ContextRequestIDKey = "requestID"
	RequestIDHeader     = "X-Request-ID"
)

// RequestID tags every request with an id, reusing the caller's
// X-Request-ID header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request once the handler chain has run.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}
		event.
			Str("request_id", c.GetString(ContextRequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondWithError maps service and logbook errors to HTTP statuses.
func respondWithError(c *gin.Context, err error) {
	var lbErr *logbook.Error
	switch {
	case errors.As(err, &lbErr):
		abortWithError(c, http.StatusBadRequest, lbErr.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrUsernameTaken):
		abortWithError(c, http.StatusConflict, "Username already taken")
	case errors.Is(err, service.ErrInvalidUsername):
		abortWithError(c, http.StatusBadRequest, "Username is required")
	case errors.Is(err, service.ErrExportDisabled):
		abortWithError(c, http.StatusServiceUnavailable, "Log export is not configured")
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(ContextRequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
