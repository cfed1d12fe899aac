package handlers

import (
	"finanzas-api/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a new custom validator backed by the shared rule set
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.GetValidate().Struct(i)
}
