// Cache administration HTTP handlers.
//
// POST /cache/clear lets an authenticated operator evict cached entries:
// the literal key "all" flushes the whole store, any other value deletes
// that single key.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClearCacheRequest is the JSON payload for the cache clear operation.
type ClearCacheRequest struct {
	CacheKey *string `json:"cache_key"`
}

// ClearCache handles POST /cache/clear.
func (h *Handlers) ClearCache(c *gin.Context) {
	var req ClearCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CacheKey == nil {
		fail(c, http.StatusBadRequest, "Some parameter is missing on request", nil)
		return
	}

	key := strings.TrimSpace(*req.CacheKey)
	if key == "" {
		fail(c, http.StatusBadRequest,
			"You must send cache_key value on payload and it can not be empty", nil)
		return
	}

	ctx := c.Request.Context()
	var err error
	if key == "all" {
		err = h.store.Clear(ctx)
	} else {
		err = h.store.Delete(ctx, key)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while clearing cache", nil)
		return
	}

	respond(c, http.StatusOK, "Success!", nil)
}
