package validation

import (
	"reflect"
	"strings"

	"finanzas-api/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("installments", validateInstallments)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// validateTransactionType accepts the two stored transaction types
func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(fl.Field().String())
}

// validateInstallments accepts the canonical "current/total" encoding
func validateInstallments(fl validator.FieldLevel) bool {
	return models.ValidateInstallments(fl.Field().String()) == nil
}
