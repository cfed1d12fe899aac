package services

import (
	"finanzas-api/internal/dto"
	"finanzas-api/internal/models"

	"github.com/google/uuid"
)

// ImportServiceInterface defines the contract for statement import operations
type ImportServiceInterface interface {
	PreviewCSV(userID uuid.UUID, data []byte, filters dto.ImportFilters) (*dto.ImportPreviewResponse, error)
	PreviewPDF(userID uuid.UUID, data []byte, filters dto.ImportFilters) (*dto.ImportPreviewResponse, error)
	Confirm(userID uuid.UUID, req *dto.ConfirmImportRequest) (*dto.ImportSummary, error)
}

// CatalogServiceInterface exposes the user's categories and payment methods
type CatalogServiceInterface interface {
	ListCategories(userID uuid.UUID) ([]models.Category, error)
	ListPaymentMethods(userID uuid.UUID) ([]models.PaymentMethod, error)
}
