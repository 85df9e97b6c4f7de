// Package domain defines the persistence models for persons and their
// product lists. These types are mapped with GORM and form the core data
// layer of the wishlist application.
package domain

import (
	"time"
)

// Person represents a registered user who owns a product list.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), generated on creation.
//   - Name: display name, required.
//   - Email: contact address, required and unique across all persons.
//   - CreateDate: insertion timestamp; indexed because listings order by it.
type Person struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Name       string    `json:"name"        gorm:"type:varchar(50);not null"`
	Email      string    `json:"email"       gorm:"type:varchar(100);not null;uniqueIndex:ux_person_email"`
	CreateDate time.Time `json:"create_date" gorm:"index:idx_person_create_date"`
}

// TableName returns the database table name for Person.
func (Person) TableName() string { return "person" }

// ProductListEntry links a person to a product in the external catalog.
// The pair (person, product) forms the composite primary key, so a product
// can appear at most once per list.
//
// Fields:
//   - PersonID: foreign key to the owning person (cascade on delete).
//   - ProductID: opaque UUID reference into the external catalog.
//   - InsertDate: insertion timestamp; indexed, pages are ordered by it.
//   - Person: FK association, removes list entries with their owner.
type ProductListEntry struct {
	PersonID   string    `json:"person_id"   gorm:"type:char(36);primaryKey"`
	ProductID  string    `json:"product_id"  gorm:"type:char(36);primaryKey"`
	InsertDate time.Time `json:"insert_date" gorm:"index:idx_productlist_insert_date"`

	Person Person `json:"-" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ProductListEntry.
func (ProductListEntry) TableName() string { return "productlist" }
