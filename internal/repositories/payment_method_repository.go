package repositories

import (
	"errors"
	"fmt"

	"finanzas-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

// paymentMethodRepository implements PaymentMethodRepositoryInterface
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepositoryInterface {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(paymentMethod *models.PaymentMethod) error {
	if err := r.db.Create(paymentMethod).Error; err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

func (r *paymentMethodRepository) GetByID(id uuid.UUID) (*models.PaymentMethod, error) {
	paymentMethod := &models.PaymentMethod{ID: id}
	if err := r.db.First(paymentMethod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return paymentMethod, nil
}

func (r *paymentMethodRepository) GetByUserID(userID uuid.UUID) ([]models.PaymentMethod, error) {
	var paymentMethods []models.PaymentMethod
	if err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&paymentMethods).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return paymentMethods, nil
}
