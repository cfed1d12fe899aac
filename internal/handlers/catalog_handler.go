package handlers

import (
	"net/http"

	"finanzas-api/internal/errors"
	"finanzas-api/internal/services"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the user's categories and payment methods so the
// client can resolve suggestions from a preview
type CatalogHandler struct {
	catalogService services.CatalogServiceInterface
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService services.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories returns all categories belonging to the authenticated user
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.catalogService.ListCategories(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: categories})
}

// ListPaymentMethods returns all payment methods belonging to the
// authenticated user
// GET /api/v1/payment-methods
func (h *CatalogHandler) ListPaymentMethods(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	methods, err := h.catalogService.ListPaymentMethods(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: methods})
}
