package repositories

import (
	"errors"
	"fmt"
	"time"

	"finanzas-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

func (r *transactionRepository) GetByUserAndDateRange(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

func (r *transactionRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}
