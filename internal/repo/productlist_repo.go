// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ProductListEntry model (the person ⇄ product association).
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
)

// AddProduct inserts a (person, product) pair with InsertDate set to UTC.
// Callers are expected to check ProductInList first; a concurrent duplicate
// insert still fails on the composite primary key and propagates the DB error.
func AddProduct(ctx context.Context, db *gorm.DB, personID, productID string) (*domain.ProductListEntry, error) {
	e := &domain.ProductListEntry{
		PersonID:   personID,
		ProductID:  productID,
		InsertDate: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// CountProducts returns the number of list entries owned by personID.
func CountProducts(ctx context.Context, db *gorm.DB, personID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ProductListEntry{}).
		Where("person_id = ?", personID).
		Count(&total).Error
	return total, err
}

// ProductInList reports whether personID already has productID in their list.
func ProductInList(ctx context.Context, db *gorm.DB, personID, productID string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ProductListEntry{}).
		Where("person_id = ? AND product_id = ?", personID, productID).
		Count(&total).Error
	return total > 0, err
}

// ListProductsPage returns a page of list entries for personID, ordered by
// insertion time ascending. The caller computes offset and limit
// (e.g., (page-1)*pageSize).
func ListProductsPage(ctx context.Context, db *gorm.DB, personID string, offset, limit int) ([]domain.ProductListEntry, error) {
	var out []domain.ProductListEntry
	err := db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("insert_date asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// RemoveProduct deletes the exact (person, product) pair. If no rows are
// affected (pair missing), it returns ErrNotFound.
func RemoveProduct(ctx context.Context, db *gorm.DB, personID, productID string) error {
	res := db.WithContext(ctx).
		Where("person_id = ? AND product_id = ?", personID, productID).
		Delete(&domain.ProductListEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
