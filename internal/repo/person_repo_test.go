package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brunovsouza/go-wishlist-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreatePerson_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	p, err := CreatePerson(context.Background(), db, "Bruno", "bruno@test.com")
	if err == nil || p != nil {
		t.Fatalf("expected error creating without table, got person=%v err=%v", p, err)
	}
}

func TestCreatePerson_Success_PersistsAndSetsFields(t *testing.T) {
	db := newTestDB(t, &domain.Person{})

	start := time.Now().UTC().Add(-time.Minute)
	p, err := CreatePerson(context.Background(), db, "Bruno", "bruno@test.com")
	if err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	if p.ID == "" || p.Name != "Bruno" || p.Email != "bruno@test.com" {
		t.Fatalf("unexpected Person fields: %+v", p)
	}
	if p.CreateDate.Before(start) {
		t.Fatalf("CreateDate seems unset/really old: %v", p.CreateDate)
	}
	// round-trip
	var got domain.Person
	if err := db.First(&got, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("load created person: %v", err)
	}
	if got.Email != "bruno@test.com" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreatePerson_DuplicateEmailFails(t *testing.T) {
	db := newTestDB(t, &domain.Person{})

	if _, err := CreatePerson(context.Background(), db, "Bruno", "bruno@test.com"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreatePerson(context.Background(), db, "Other", "bruno@test.com"); err == nil {
		t.Fatal("expected unique constraint violation on duplicate email")
	}
}

func TestListPersons_OrderAscending(t *testing.T) {
	db := newTestDB(t, &domain.Person{})

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	seed := []domain.Person{
		{ID: "p2", Name: "B", Email: "b@test.com", CreateDate: t2},
		{ID: "p3", Name: "C", Email: "c@test.com", CreateDate: t3},
		{ID: "p1", Name: "A", Email: "a@test.com", CreateDate: t1},
	}
	for _, p := range seed {
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}

	list, err := ListPersons(context.Background(), db)
	if err != nil {
		t.Fatalf("ListPersons: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 persons, got %d", len(list))
	}
	// Must be ascending by CreateDate: p1, p2, p3
	if list[0].ID != "p1" || list[1].ID != "p2" || list[2].ID != "p3" {
		t.Fatalf("unexpected order: %#v", list)
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.Person{})
	_, err := GetPerson(context.Background(), db, "missing")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePerson_Success(t *testing.T) {
	db := newTestDB(t, &domain.Person{})
	if err := db.Create(&domain.Person{ID: "p1", Name: "Old", Email: "old@test.com"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := UpdatePerson(context.Background(), db, "p1", "New", "new@test.com"); err != nil {
		t.Fatalf("UpdatePerson: %v", err)
	}
	var got domain.Person
	if err := db.First(&got, "id = ?", "p1").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "New" || got.Email != "new@test.com" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestUpdatePerson_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.Person{})
	if err := UpdatePerson(context.Background(), db, "missing", "n", "e@test.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePerson(t *testing.T) {
	db := newTestDB(t, &domain.Person{})
	if err := db.Create(&domain.Person{ID: "p1", Name: "A", Email: "a@test.com"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := DeletePerson(context.Background(), db, "p1"); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}
	if err := DeletePerson(context.Background(), db, "p1"); err != ErrNotFound {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
