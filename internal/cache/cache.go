// Package cache defines the response cache used by the read-heavy endpoints
// and its backends. Values are opaque byte slices (serialized JSON) stored
// under well-known string keys with a fixed expiry.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// DefaultTTL is the expiry applied to cached responses.
const DefaultTTL = time.Hour

// Store is the cache contract consumed by services and the cache-admin
// endpoint. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key with the given TTL (<= 0 means no expiry).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}

// PersonListKey is the cache key for the full person listing.
const PersonListKey = "person_list"

// PersonKey returns the cache key for a single person.
func PersonKey(personID string) string {
	return fmt.Sprintf("person_%s", personID)
}

// ProductPageKey returns the cache key for one page of a person's
// product list.
func ProductPageKey(personID string, page int) string {
	return fmt.Sprintf("products_person_%s_page_%d", personID, page)
}
