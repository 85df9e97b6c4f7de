// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Person
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a person is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated; unique-email violations surface as
//     the driver's duplicate-key error and are classified by the service
//     layer.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreatePerson inserts a new Person with the given name and email.
// The person ID is a randomly generated UUID and CreateDate is set to UTC.
//
// On success, it returns the persisted Person. On failure (including a
// unique-email violation), it returns the DB error.
func CreatePerson(ctx context.Context, db *gorm.DB, name, email string) (*domain.Person, error) {
	p := &domain.Person{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		CreateDate: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPersons returns all persons ordered by creation time ascending
// (oldest first). It returns an empty slice when the table is empty.
func ListPersons(ctx context.Context, db *gorm.DB) ([]domain.Person, error) {
	var out []domain.Person
	err := db.WithContext(ctx).
		Order("create_date asc").
		Find(&out).Error
	return out, err
}

// GetPerson fetches a single person by ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetPerson(ctx context.Context, db *gorm.DB, id string) (*domain.Person, error) {
	var p domain.Person
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePerson overwrites the name and email of the person identified by id.
// If no rows are affected (person missing), it returns ErrNotFound.
func UpdatePerson(ctx context.Context, db *gorm.DB, id, name, email string) error {
	res := db.WithContext(ctx).
		Model(&domain.Person{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "email": email})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePerson removes the person identified by id. If no rows are affected
// (person missing), it returns ErrNotFound so the caller can decide whether
// that is an error.
func DeletePerson(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Person{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
