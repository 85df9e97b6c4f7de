// Login and liveness HTTP handlers.
//
// Login uses HTTP Basic authentication: any username is accepted, the
// password is compared against the single configured credential, and a
// successful exchange yields a signed bearer token carrying the username.
// Every resource group also exposes an unauthenticated /ping for probes.
package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunovsouza/go-wishlist-backend/internal/auth"
)

// Login handles GET /login/. On success the response data carries the
// signed token; on failure the response challenges the client with a
// WWW-Authenticate header.
func (h *Handlers) Login(c *gin.Context) {
	user, pass, ok := c.Request.BasicAuth()
	if ok && subtle.ConstantTimeCompare([]byte(pass), []byte(h.password)) == 1 {
		token, err := auth.Issue(h.secret, user, h.tokenTTL)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Error while generating token", nil)
			return
		}
		respond(c, http.StatusOK, "Success", gin.H{"token": token})
		return
	}

	c.Header("WWW-Authenticate", `Basic realm="Login required"`)
	fail(c, http.StatusUnauthorized, "Invalid credentials", nil)
}

// Ping answers liveness probes with the route that was hit.
func (h *Handlers) Ping(c *gin.Context) {
	respond(c, http.StatusOK, "Success", gin.H{"route": c.Request.URL.Path})
}
