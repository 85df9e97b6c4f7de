// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by every endpoint. All
// responses, success and failure alike, use the same envelope so clients can
// always read `message` and optionally `data`:
//
//	HTTP/1.1 200 OK
//	{ "message": "Success", "data": { "person_id": "…" } }
//
//	HTTP/1.1 404 Not Found
//	{ "message": "This product does not exists", "data": { "product_id": "…" } }
//
// Conventions:
//   - respond() writes the envelope; a nil data map omits the `data` field.
//   - fail() additionally aborts the chain and logs 5xx responses with the
//     request-scoped logger for observability.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunovsouza/go-wishlist-backend/internal/http/middleware"
)

// Envelope is the uniform response body returned by all endpoints.
type Envelope struct {
	// Message is a human-readable outcome description, safe to display.
	Message string `json:"message"`
	// Data carries the endpoint-specific payload, when any.
	Data gin.H `json:"data,omitempty"`
}

// respond writes a success (or soft-failure) envelope with the given status.
// Pass nil data to omit the `data` field entirely.
func respond(c *gin.Context, status int, message string, data gin.H) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

// fail aborts the request with an error envelope.
//
// Server errors (>=500) are logged with the request-scoped logger so that
// operators can correlate the response with the underlying failure.
func fail(c *gin.Context, status int, message string, data gin.H) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", message).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, Envelope{Message: message, Data: data})
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup for NoRoute handlers) should call
// Fail to return consistent envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, message string, data gin.H) {
	fail(c, status, message, data)
}
