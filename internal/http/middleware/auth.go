// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements token authentication for the protected API surface.
// Clients obtain a signed token from the login endpoint and present it on
// every protected request as a `token` query parameter.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunovsouza/go-wishlist-backend/internal/auth"
)

// userIDKey is the Gin context key under which the authenticated user is
// stored for downstream logging and rate limiting.
const userIDKey = "userID"

// TokenAuth returns a middleware that requires a valid signed token in the
// `token` query parameter.
//
// Behavior:
//   - Missing token → 403 "Token is missing!"
//   - Invalid or expired token → 403 "Token is invalid!"
//   - Valid token → the username claim is stored under "userID" and the
//     request proceeds.
func TokenAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Token is missing!",
			})
			return
		}

		claims, err := auth.Verify(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Token is invalid!",
			})
			return
		}

		c.Set(userIDKey, claims.User)
		c.Next()
	}
}
