// Package services – ProductListService
//
// This file implements the ProductListService, which manages each person's
// wish list. Pages are cached per (person, page) key; list mutations
// recompute the page count and evict every page key that may now be stale.
// Product metadata is never persisted: each page resolves its entries
// against the external catalog with a bounded number of concurrent fetches,
// omitting entries the catalog no longer knows.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brunovsouza/go-wishlist-backend/internal/cache"
	"github.com/brunovsouza/go-wishlist-backend/internal/catalog"
	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
	"github.com/brunovsouza/go-wishlist-backend/internal/repo"
	"github.com/brunovsouza/go-wishlist-backend/internal/utils"
)

// ProductListRepo defines the repository contract required by
// ProductListService.
type ProductListRepo interface {
	// AddProduct inserts a (person, product) pair.
	AddProduct(ctx context.Context, db *gorm.DB, personID, productID string) (*domain.ProductListEntry, error)

	// CountProducts returns the size of a person's list.
	CountProducts(ctx context.Context, db *gorm.DB, personID string) (int64, error)

	// ProductInList reports whether the pair already exists.
	ProductInList(ctx context.Context, db *gorm.DB, personID, productID string) (bool, error)

	// ListProductsPage returns a page of entries ordered by insertion time.
	ListProductsPage(ctx context.Context, db *gorm.DB, personID string, offset, limit int) ([]domain.ProductListEntry, error)

	// RemoveProduct deletes the exact pair.
	RemoveProduct(ctx context.Context, db *gorm.DB, personID, productID string) error
}

// Catalog is the external product catalog contract consumed by the service.
// *catalog.Client satisfies it.
type Catalog interface {
	// Exists reports whether the catalog knows productID.
	Exists(ctx context.Context, productID string) (bool, error)
	// ResolveAll resolves product metadata with bounded concurrency,
	// omitting failed lookups.
	ResolveAll(ctx context.Context, productIDs []string, workers int) []catalog.Product
}

// ProductListService provides the per-person product list operations.
type ProductListService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the product-list repository used by this service.
	Repo ProductListRepo
	// Cache stores serialized page payloads.
	Cache cache.Store
	// Catalog resolves product IDs to display metadata.
	Catalog Catalog

	// PageSize is the number of entries per page (ITEMS_PER_PAGE).
	PageSize int
	// Workers caps concurrent catalog lookups per page.
	Workers int
	// CacheTTL is the expiry for cached pages.
	CacheTTL time.Duration
}

// ListPage returns one serialized page of a person's product list, from
// cache when possible.
//
// Errors:
//   - ErrEmptyList when the person has no products.
//   - *PageRangeError when page exceeds the last page.
func (s *ProductListService) ListPage(ctx context.Context, personID string, page int) (json.RawMessage, error) {
	key := cache.ProductPageKey(personID, page)
	if raw, err := s.Cache.Get(ctx, key); err == nil {
		return raw, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("cache_key", key).Msg("page cache read failed, falling back to store")
	}

	count, err := s.Repo.CountProducts(ctx, s.DB, personID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyList
	}

	maxPage := utils.MaxPage(count, s.PageSize)
	if page > maxPage {
		return nil, &PageRangeError{MaxPage: maxPage, ProductCount: count}
	}

	entries, err := s.Repo.ListProductsPage(ctx, s.DB, personID, (page-1)*s.PageSize, s.PageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	products := s.Catalog.ResolveAll(ctx, ids, s.Workers)
	log.Debug().
		Str("person_id", personID).
		Int("page", page).
		Int("requested", len(ids)).
		Int("resolved", len(products)).
		Msg("product page resolved")

	if products == nil {
		products = []catalog.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, key, raw, s.CacheTTL); err != nil {
		log.Warn().Err(err).Str("cache_key", key).Msg("page cache write failed")
	}
	return raw, nil
}

// Add validates productID against the catalog and inserts the pair.
//
// Errors:
//   - ErrProductNotFound when the catalog does not know the product.
//   - ErrAlreadyInList when the pair exists; nothing is modified.
//
// On success every page key up to the new last page is evicted.
func (s *ProductListService) Add(ctx context.Context, personID, productID string) error {
	known, err := s.Catalog.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !known {
		return ErrProductNotFound
	}

	in, err := s.Repo.ProductInList(ctx, s.DB, personID, productID)
	if err != nil {
		return err
	}
	if in {
		return ErrAlreadyInList
	}

	if _, err := s.Repo.AddProduct(ctx, s.DB, personID, productID); err != nil {
		return err
	}

	count, err := s.Repo.CountProducts(ctx, s.DB, personID)
	if err != nil {
		return err
	}
	s.invalidatePages(ctx, personID, utils.MaxPage(count, s.PageSize))
	return nil
}

// Remove deletes the exact pair.
//
// Errors:
//   - ErrEntryNotFound when the pair is not in the list.
//
// On success the page keys are evicted: just page 1 when the list became
// empty, otherwise every page up to the recomputed last page.
func (s *ProductListService) Remove(ctx context.Context, personID, productID string) error {
	if err := s.Repo.RemoveProduct(ctx, s.DB, personID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	count, err := s.Repo.CountProducts(ctx, s.DB, personID)
	if err != nil {
		return err
	}
	if count == 0 {
		s.invalidatePages(ctx, personID, 1)
		return nil
	}
	s.invalidatePages(ctx, personID, utils.MaxPage(count, s.PageSize))
	return nil
}

// invalidatePages evicts the page keys 1..maxPage for personID. Failures
// are logged, not surfaced; a stale page expires with its TTL anyway.
func (s *ProductListService) invalidatePages(ctx context.Context, personID string, maxPage int) {
	for page := 1; page <= maxPage; page++ {
		key := cache.ProductPageKey(personID, page)
		log.Debug().Str("cache_key", key).Msg("deleting page cache key")
		if err := s.Cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("cache_key", key).Msg("page cache invalidation failed")
		}
	}
}
