// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file enforces the body preconditions shared by every mutating
// endpoint: the payload must be non-empty and must declare a JSON content
// type before any handler attempts to parse it.
package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON returns a middleware that rejects mutating requests whose body
// is missing or not declared as JSON.
//
// Behavior:
//   - ContentLength <= 0 → 411 "Payload can not be empty"
//   - Content-Type not application/json → 415 "Unsupported Media Type"
//
// Install it on routes that parse a JSON body (POST/PUT/PATCH/DELETE with
// payloads); read-only routes are unaffected.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength <= 0 {
			LoggerFrom(c).Error().
				Str("content_type", c.ContentType()).
				Msg("empty request payload")
			c.AbortWithStatusJSON(http.StatusLengthRequired, gin.H{
				"message": "Payload can not be empty",
			})
			return
		}

		if !isJSONContent(c.GetHeader("Content-Type")) {
			LoggerFrom(c).Error().
				Str("content_type", c.ContentType()).
				Msg("unsupported media type")
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"message": "Unsupported Media Type",
			})
			return
		}

		c.Next()
	}
}

// isJSONContent reports whether a Content-Type header denotes JSON,
// tolerating parameters such as charset and +json suffixes.
func isJSONContent(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
