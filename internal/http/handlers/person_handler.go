// Person HTTP handlers.
//
// This file exposes the REST endpoints for the person resource:
//   - GET    /person/      (list, cached)
//   - POST   /person/      (create)
//   - GET    /person/{id}  (fetch, cached)
//   - PUT    /person/{id}  (full replace)
//   - PATCH  /person/{id}  (partial update)
//   - DELETE /person/{id}  (delete; soft success when absent)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate service errors into envelope responses. Lookups of absent
// persons deliberately answer 200 with an explanatory message rather than 404,
// matching the delete semantics clients already depend on.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brunovsouza/go-wishlist-backend/internal/cache"
	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
	"github.com/brunovsouza/go-wishlist-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// PersonService defines person lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PersonService interface {
	// List returns the serialized person listing (cache-aside).
	List(ctx context.Context) (json.RawMessage, error)
	// Create inserts a new person and returns it.
	Create(ctx context.Context, name, email string) (*domain.Person, error)
	// Get returns one serialized person (cache-aside).
	Get(ctx context.Context, id string) (json.RawMessage, error)
	// Replace overwrites both name and email.
	Replace(ctx context.Context, id, name, email string) error
	// Update applies a partial update; nil fields keep their current value.
	Update(ctx context.Context, id string, name, email *string) error
	// Delete removes a person.
	Delete(ctx context.Context, id string) error
}

// ProductListService defines the per-person product list operations.
type ProductListService interface {
	// ListPage returns one serialized page of enriched products.
	ListPage(ctx context.Context, personID string, page int) (json.RawMessage, error)
	// Add validates a product against the catalog and appends it.
	Add(ctx context.Context, personID, productID string) error
	// Remove deletes the (person, product) pair.
	Remove(ctx context.Context, personID, productID string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for login, persons, product lists, and
// cache administration. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	personSvc  PersonService
	productSvc ProductListService
	store      cache.Store

	secret   string
	password string
	tokenTTL time.Duration
}

// New constructs a Handlers instance bound to the given services and
// authentication settings.
func New(personSvc PersonService, productSvc ProductListService, store cache.Store, secret, password string, tokenTTL time.Duration) *Handlers {
	return &Handlers{
		personSvc:  personSvc,
		productSvc: productSvc,
		store:      store,
		secret:     secret,
		password:   password,
		tokenTTL:   tokenTTL,
	}
}

//
// DTOs
//

// CreatePersonRequest is the JSON payload for creating a person.
type CreatePersonRequest struct {
	Name  string `json:"name" example:"Bruno Souza"`
	Email string `json:"email" example:"bruno@example.com"`
}

// ReplacePersonRequest is the JSON payload for a full person replace.
// Both fields must be present.
type ReplacePersonRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdatePersonRequest is the JSON payload for a partial person update.
// Absent or blank fields keep their stored value.
type UpdatePersonRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

//
// Endpoints
//

// ListPersons handles GET /person/ and returns every person ordered by
// creation date. The serialized listing is cached for an hour.
func (h *Handlers) ListPersons(c *gin.Context) {
	raw, err := h.personSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while listing persons", nil)
		return
	}
	respond(c, http.StatusOK, "Success", gin.H{"person_list": raw})
}

// CreatePerson handles POST /person/. Name and email are required; a
// duplicate email answers 500 with a descriptive message, keeping the
// contract existing clients parse.
func (h *Handlers) CreatePerson(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Some parameter is missing on request", nil)
		return
	}

	p, err := h.personSvc.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, "Name or email is missing.", nil)
		case errors.Is(err, services.ErrDuplicateEmail):
			fail(c, http.StatusInternalServerError,
				"Error while creating person! That email address is already in use.", nil)
		default:
			fail(c, http.StatusInternalServerError, "Error while creating person", nil)
		}
		return
	}

	respond(c, http.StatusOK, "Success!", gin.H{"person_id": p.ID})
}

// GetPerson handles GET /person/{id}. An absent person answers a soft 200
// with "Person not found" instead of a 404.
func (h *Handlers) GetPerson(c *gin.Context) {
	id := c.Param("id")

	raw, err := h.personSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			respond(c, http.StatusOK, "Person not found", gin.H{"person_id": id})
			return
		}
		fail(c, http.StatusInternalServerError, "Error while fetching person", gin.H{"person_id": id})
		return
	}

	respond(c, http.StatusOK, "Success", gin.H{"person": raw})
}

// ReplacePerson handles PUT /person/{id}. Both name and email must be
// present in the payload.
func (h *Handlers) ReplacePerson(c *gin.Context) {
	id := c.Param("id")

	var req ReplacePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || req.Email == nil {
		fail(c, http.StatusBadRequest, "Some parameter is missing on request", nil)
		return
	}

	if err := h.personSvc.Replace(c.Request.Context(), id, *req.Name, *req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrPersonNotFound):
			respond(c, http.StatusOK, "Person not found", gin.H{"person_id": id})
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, "Some parameter is missing on request", nil)
		default:
			fail(c, http.StatusInternalServerError,
				"Error while updating person information", gin.H{"person_id": id})
		}
		return
	}

	respond(c, http.StatusOK, "Success", gin.H{"person_id": id})
}

// UpdatePerson handles PATCH /person/{id}. Fields left out of the payload
// keep their stored values.
func (h *Handlers) UpdatePerson(c *gin.Context) {
	id := c.Param("id")

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Some parameter is missing on request", nil)
		return
	}

	if err := h.personSvc.Update(c.Request.Context(), id, req.Name, req.Email); err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			respond(c, http.StatusOK, "Person not found", gin.H{"person_id": id})
			return
		}
		fail(c, http.StatusInternalServerError,
			"Error while updating person information", gin.H{"person_id": id})
		return
	}

	respond(c, http.StatusOK, "Success", gin.H{"person_id": id})
}

// DeletePerson handles DELETE /person/{id}. Deleting an absent person is a
// no-op success.
func (h *Handlers) DeletePerson(c *gin.Context) {
	id := c.Param("id")

	if err := h.personSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			respond(c, http.StatusOK, "Person not found", gin.H{"person_id": id})
			return
		}
		fail(c, http.StatusInternalServerError, "Error while deleting person", gin.H{"person_id": id})
		return
	}

	respond(c, http.StatusOK, "Success", gin.H{"person_id": id})
}
