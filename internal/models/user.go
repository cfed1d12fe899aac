package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email format is invalid")
)

// User owns categories, payment methods and transactions. Registration and
// session handling live at the auth boundary, not in this service.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FirstName string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for User
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return u.Validate()
}

// Validate validates the user fields
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !strings.Contains(u.Email, "@") {
		return ErrEmailInvalid
	}
	return nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// TableName returns the table name for User
func (u *User) TableName() string {
	return "users"
}
