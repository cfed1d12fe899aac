package services

import (
	"finanzas-api/internal/models"
	"finanzas-api/internal/repositories"

	"github.com/google/uuid"
)

// catalogService implements CatalogServiceInterface
type catalogService struct {
	categoryRepo      repositories.CategoryRepositoryInterface
	paymentMethodRepo repositories.PaymentMethodRepositoryInterface
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repositories.CategoryRepositoryInterface,
	paymentMethodRepo repositories.PaymentMethodRepositoryInterface,
) CatalogServiceInterface {
	return &catalogService{
		categoryRepo:      categoryRepo,
		paymentMethodRepo: paymentMethodRepo,
	}
}

func (s *catalogService) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	return s.categoryRepo.GetByUserID(userID)
}

func (s *catalogService) ListPaymentMethods(userID uuid.UUID) ([]models.PaymentMethod, error) {
	return s.paymentMethodRepo.GetByUserID(userID)
}
