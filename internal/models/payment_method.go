package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPaymentMethodNameRequired = errors.New("payment method name is required")

// PaymentMethod is a user-defined payment instrument, e.g. "Visa Galicia",
// "Transferencia" or "Efectivo".
type PaymentMethod struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for PaymentMethod
func (p *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return p.Validate()
}

// Validate validates the payment method fields
func (p *PaymentMethod) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrPaymentMethodNameRequired
	}
	if p.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	return nil
}

// NameContains reports whether the payment method name and s contain each
// other in either direction, ignoring case. Used for import suggestions where
// the detected label ("Visa Galicia") rarely equals the stored name exactly.
func (p *PaymentMethod) NameContains(s string) bool {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	s = strings.ToLower(strings.TrimSpace(s))
	if name == "" || s == "" {
		return false
	}
	return strings.Contains(name, s) || strings.Contains(s, name)
}

// TableName returns the table name for PaymentMethod
func (p *PaymentMethod) TableName() string {
	return "payment_methods"
}
