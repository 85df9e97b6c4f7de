// Product-list HTTP handlers.
//
// This file exposes the REST endpoints for a person's product list:
//   - GET    /person/{id}/product?page=N  (paginated, catalog-enriched, cached)
//   - POST   /person/{id}/product         (add a product by catalog id)
//   - DELETE /person/{id}/product         (remove a product by catalog id)
//
// Page numbers start at 1; an absent page parameter means page 1 and any
// non-numeric or non-positive value is rejected with a single 400.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brunovsouza/go-wishlist-backend/internal/services"
)

// ProductRequest is the JSON payload for adding or removing a list entry.
type ProductRequest struct {
	ProductID *string `json:"product_id"`
}

// ListProducts handles GET /person/{id}/product. Each page is resolved
// against the external catalog and cached per (person, page) for an hour;
// entries whose catalog lookup fails are omitted from the result.
func (h *Handlers) ListProducts(c *gin.Context) {
	personID := c.Param("id")

	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, "Some parameter is on incorrect format",
				gin.H{"person_id": personID})
			return
		}
		page = n
	}

	raw, err := h.productSvc.ListPage(c.Request.Context(), personID, page)
	if err != nil {
		var pre *services.PageRangeError
		switch {
		case errors.Is(err, services.ErrEmptyList):
			respond(c, http.StatusOK, "This product list is empty", gin.H{"person_id": personID})
		case errors.As(err, &pre):
			fail(c, http.StatusNotFound,
				fmt.Sprintf("Page number must be less than or equal to %d", pre.MaxPage),
				gin.H{"product_count": pre.ProductCount})
		default:
			fail(c, http.StatusInternalServerError, "Error while listing products",
				gin.H{"person_id": personID})
		}
		return
	}

	respond(c, http.StatusOK, "Success", gin.H{"person_id": personID, "product_list": raw})
}

// AddProduct handles POST /person/{id}/product. The product must exist in
// the external catalog; adding a product already in the list is a no-op
// success that does not modify anything.
func (h *Handlers) AddProduct(c *gin.Context) {
	personID := c.Param("id")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == nil {
		fail(c, http.StatusBadRequest, "Some parameter is missing on request", nil)
		return
	}
	productID := *req.ProductID

	if err := h.productSvc.Add(c.Request.Context(), personID, productID); err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			fail(c, http.StatusNotFound, "This product does not exists",
				gin.H{"product_id": productID})
		case errors.Is(err, services.ErrAlreadyInList):
			respond(c, http.StatusOK, "Product already is this list",
				gin.H{"product_id": productID})
		default:
			fail(c, http.StatusInternalServerError,
				fmt.Sprintf("Error while adding product ('%s') to person ('%s')", productID, personID),
				gin.H{"person_id": personID, "product_id": productID})
		}
		return
	}

	respond(c, http.StatusOK, "Product successfully added to list",
		gin.H{"person_id": personID, "product_id": productID})
}

// RemoveProduct handles DELETE /person/{id}/product. Removing a pair that
// does not exist is a soft success, mirroring person deletion.
func (h *Handlers) RemoveProduct(c *gin.Context) {
	personID := c.Param("id")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == nil {
		fail(c, http.StatusBadRequest, "Some parameter is missing on payload", nil)
		return
	}
	productID := *req.ProductID

	if err := h.productSvc.Remove(c.Request.Context(), personID, productID); err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			respond(c, http.StatusOK, "Product not found in list",
				gin.H{"person_id": personID, "product_id": productID})
			return
		}
		fail(c, http.StatusInternalServerError, "Error while deleting product from list",
			gin.H{"person_id": personID, "product_id": productID})
		return
	}

	respond(c, http.StatusOK, "Success", gin.H{"person_id": personID, "product_id": productID})
}
