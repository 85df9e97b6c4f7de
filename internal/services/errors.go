// Package services defines the business logic for persons, product lists,
// and cache administration. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import (
	"errors"
	"fmt"
)

// Person-related errors.
var (
	// ErrPersonNotFound indicates that the requested person does not exist.
	ErrPersonNotFound = errors.New("person not found")

	// ErrMissingFields is returned when a create or replace request lacks
	// a required name or email.
	ErrMissingFields = errors.New("name or email is missing")

	// ErrDuplicateEmail is returned when a write would violate the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("email address is already in use")
)

// Product-list errors.
var (
	// ErrProductNotFound indicates the external catalog does not know the
	// given product ID.
	ErrProductNotFound = errors.New("product does not exist")

	// ErrAlreadyInList is returned when adding a product that is already in
	// the person's list.
	ErrAlreadyInList = errors.New("product already in list")

	// ErrEntryNotFound is returned when removing a product that is not in
	// the person's list.
	ErrEntryNotFound = errors.New("product not in list")

	// ErrEmptyList indicates the person has no products at all.
	ErrEmptyList = errors.New("product list is empty")
)

// PageRangeError is returned when a requested page exceeds the last page of
// a person's product list. It carries the limits so handlers can surface
// them to the client.
type PageRangeError struct {
	MaxPage      int
	ProductCount int64
}

// Error implements the error interface.
func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page number must be less than or equal to %d", e.MaxPage)
}
