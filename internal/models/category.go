package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultImportParentName is the parent grouping under which categories
// auto-created during statement imports are filed.
const DefaultImportParentName = "Importados"

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name too long")
)

// Category is a user-defined spending/income category. Categories form a
// single-level hierarchy: a category may reference a parent grouping.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if len(c.Name) > 100 {
		return ErrCategoryNameTooLong
	}
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	return nil
}

// NameMatches reports whether name equals the category name ignoring case.
func (c *Category) NameMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}
