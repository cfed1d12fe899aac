package repositories

import (
	"time"

	"finanzas-api/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
	// FindOrCreate returns the user's category with the given name,
	// creating it under parentID when absent. The boolean reports whether
	// a new row was created.
	FindOrCreate(userID uuid.UUID, name string, parentID *uuid.UUID) (*models.Category, bool, error)
}

// PaymentMethodRepositoryInterface defines the contract for payment method repository operations
type PaymentMethodRepositoryInterface interface {
	Create(paymentMethod *models.PaymentMethod) error
	GetByID(id uuid.UUID) (*models.PaymentMethod, error)
	GetByUserID(userID uuid.UUID) ([]models.PaymentMethod, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByUserAndDateRange(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
	CountByUserID(userID uuid.UUID) (int64, error)
}
