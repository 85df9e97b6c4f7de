// Package services – PersonService
//
// This file implements the PersonService, which manages the person resource:
// listing (cached), creation, lookup (cached), full and partial updates, and
// deletion. Reads are cache-aside with a fixed expiry; every mutation
// invalidates the affected keys so subsequent reads repopulate from the
// store. Service-level errors (e.g. ErrPersonNotFound, ErrDuplicateEmail)
// are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/brunovsouza/go-wishlist-backend/internal/cache"
	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
	"github.com/brunovsouza/go-wishlist-backend/internal/repo"
)

// PersonRepo defines the repository contract required by PersonService.
// Implementations are responsible for persistence of the person aggregate.
type PersonRepo interface {
	// CreatePerson inserts a new person row.
	CreatePerson(ctx context.Context, db *gorm.DB, name, email string) (*domain.Person, error)

	// ListPersons returns all persons ordered by creation time.
	ListPersons(ctx context.Context, db *gorm.DB) ([]domain.Person, error)

	// GetPerson fetches a person by ID.
	GetPerson(ctx context.Context, db *gorm.DB, id string) (*domain.Person, error)

	// UpdatePerson overwrites a person's name and email.
	UpdatePerson(ctx context.Context, db *gorm.DB, id, name, email string) error

	// DeletePerson removes a person by ID.
	DeletePerson(ctx context.Context, db *gorm.DB, id string) error
}

// PersonService provides person-level operations with cache-aside reads.
type PersonService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the person repository used by this service.
	Repo PersonRepo
	// Cache stores serialized responses for the read endpoints.
	Cache cache.Store
	// CacheTTL is the expiry for cached entries.
	CacheTTL time.Duration
	// NameLocale drives display-name casing.
	NameLocale language.Tag
}

// NewPersonService constructs a PersonService with the default cache expiry.
func NewPersonService(db *gorm.DB, r PersonRepo, store cache.Store) *PersonService {
	return &PersonService{
		DB:         db,
		Repo:       r,
		Cache:      store,
		CacheTTL:   cache.DefaultTTL,
		NameLocale: language.Und,
	}
}

// List returns the serialized person listing, from cache when possible.
// On a miss the listing is loaded from the store, cached, and returned.
func (s *PersonService) List(ctx context.Context) (json.RawMessage, error) {
	if raw, err := s.Cache.Get(ctx, cache.PersonListKey); err == nil {
		return raw, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Msg("person list cache read failed, falling back to store")
	}

	persons, err := s.Repo.ListPersons(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(persons)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, cache.PersonListKey, raw, s.CacheTTL); err != nil {
		log.Warn().Err(err).Msg("person list cache write failed")
	}
	return raw, nil
}

// Create validates and inserts a new person. Missing name or email yields
// ErrMissingFields; a unique-email violation yields ErrDuplicateEmail.
// On success the listing cache is invalidated.
func (s *PersonService) Create(ctx context.Context, name, email string) (*domain.Person, error) {
	name = s.normalizeName(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	p, err := s.Repo.CreatePerson(ctx, s.DB, name, email)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.invalidate(ctx, cache.PersonListKey)
	return p, nil
}

// Get returns one serialized person, from cache when possible.
// A missing person yields ErrPersonNotFound.
func (s *PersonService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	key := cache.PersonKey(id)
	if raw, err := s.Cache.Get(ctx, key); err == nil {
		return raw, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("person_id", id).Msg("person cache read failed, falling back to store")
	}

	p, err := s.Repo.GetPerson(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, key, raw, s.CacheTTL); err != nil {
		log.Warn().Err(err).Str("person_id", id).Msg("person cache write failed")
	}
	return raw, nil
}

// Replace overwrites both name and email. Either missing yields
// ErrMissingFields; an absent person yields ErrPersonNotFound. On success
// the per-person and listing caches are invalidated.
func (s *PersonService) Replace(ctx context.Context, id, name, email string) error {
	name = s.normalizeName(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return ErrMissingFields
	}

	if err := s.Repo.UpdatePerson(ctx, s.DB, id, name, email); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrPersonNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	s.invalidate(ctx, cache.PersonKey(id), cache.PersonListKey)
	return nil
}

// Update applies a partial update: nil or blank fields keep their current
// value. An absent person yields ErrPersonNotFound. Cache invalidation
// matches Replace.
func (s *PersonService) Update(ctx context.Context, id string, name, email *string) error {
	current, err := s.Repo.GetPerson(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	newName := current.Name
	if name != nil {
		if n := s.normalizeName(*name); n != "" {
			newName = n
		}
	}
	newEmail := current.Email
	if email != nil {
		if e := strings.TrimSpace(*email); e != "" {
			newEmail = e
		}
	}

	if err := s.Repo.UpdatePerson(ctx, s.DB, id, newName, newEmail); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrPersonNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	s.invalidate(ctx, cache.PersonKey(id), cache.PersonListKey)
	return nil
}

// Delete removes a person. An absent person yields ErrPersonNotFound so the
// handler can keep the soft not-found response. On success the per-person
// and listing caches are invalidated.
func (s *PersonService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeletePerson(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	s.invalidate(ctx, cache.PersonKey(id), cache.PersonListKey)
	return nil
}

// invalidate best-effort deletes cache keys; failures are logged, not
// surfaced, since the store already holds the truth.
func (s *PersonService) invalidate(ctx context.Context, keys ...string) {
	for _, k := range keys {
		if err := s.Cache.Delete(ctx, k); err != nil {
			log.Warn().Err(err).Str("cache_key", k).Msg("cache invalidation failed")
		}
	}
}

// normalizeName trims, collapses whitespace, and title-cases a display name.
func (s *PersonService) normalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return cases.Title(s.NameLocale, cases.NoLower).String(name)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
