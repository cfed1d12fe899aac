package models

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// Formato classifies a purchase as lump-sum vs installment-based.
	FormatoContado = "contado"
	FormatoCuotas  = "cuotas"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrInvalidInstallments    = errors.New("invalid installments format")
	ErrDescriptionRequired    = errors.New("transaction description is required")
)

// installmentsPattern is the canonical "current/total" encoding.
var installmentsPattern = regexp.MustCompile(`^(\d+)/(\d+)$`)

// Transaction is a committed ledger entry. Amounts are always positive; the
// direction is carried by Type.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	Type            string          `gorm:"type:varchar(20);not null" json:"type"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid;index" json:"payment_method_id,omitempty"`
	Installments    *string         `gorm:"type:varchar(10)" json:"installments,omitempty"`
	Formato         string          `gorm:"type:varchar(10);not null;default:'contado'" json:"formato"`
	SeriesID        *uuid.UUID      `gorm:"type:uuid;index" json:"series_id,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"-"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Formato == "" {
		t.Formato = DeriveFormato(t.Installments)
	}
	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrDescriptionRequired
	}
	if t.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	if t.Installments != nil {
		if err := ValidateInstallments(*t.Installments); err != nil {
			return err
		}
	}
	return nil
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// ValidateInstallments checks the "current/total" encoding: both positive
// integers with current <= total.
func ValidateInstallments(s string) error {
	m := installmentsPattern.FindStringSubmatch(s)
	if m == nil {
		return ErrInvalidInstallments
	}
	current, err := strconv.Atoi(m[1])
	if err != nil {
		return ErrInvalidInstallments
	}
	total, err := strconv.Atoi(m[2])
	if err != nil {
		return ErrInvalidInstallments
	}
	if current < 1 || total < 1 || current > total {
		return ErrInvalidInstallments
	}
	return nil
}

// DeriveFormato maps presence of an installments string to the stored
// formato classification.
func DeriveFormato(installments *string) string {
	if installments != nil && *installments != "" {
		return FormatoCuotas
	}
	return FormatoContado
}
