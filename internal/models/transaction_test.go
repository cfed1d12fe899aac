package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() *Transaction {
	return &Transaction{
		UserID:      uuid.New(),
		Date:        time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		Type:        TransactionTypeExpense,
		Description: "Supermercado Coto",
		Amount:      decimal.NewFromFloat(1249.16),
		CategoryID:  uuid.New(),
	}
}

func TestTransactionValidate(t *testing.T) {
	t.Run("valid transaction", func(t *testing.T) {
		assert.NoError(t, validTransaction().Validate())
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Amount = decimal.Zero
		assert.ErrorIs(t, txn.Validate(), ErrInvalidAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Amount = decimal.NewFromInt(-10)
		assert.ErrorIs(t, txn.Validate(), ErrInvalidAmount)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Type = "transfer"
		assert.ErrorIs(t, txn.Validate(), ErrInvalidTransactionType)
	})

	t.Run("blank description rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Description = "   "
		assert.ErrorIs(t, txn.Validate(), ErrDescriptionRequired)
	})

	t.Run("malformed installments rejected", func(t *testing.T) {
		txn := validTransaction()
		bad := "3de6"
		txn.Installments = &bad
		assert.ErrorIs(t, txn.Validate(), ErrInvalidInstallments)
	})
}

func TestValidateInstallments(t *testing.T) {
	testCases := []struct {
		input string
		ok    bool
	}{
		{"1/1", true},
		{"3/6", true},
		{"12/12", true},
		{"0/6", false},
		{"7/6", false},
		{"3/0", false},
		{"3-6", false},
		{"a/b", false},
		{"", false},
	}

	for _, tc := range testCases {
		err := ValidateInstallments(tc.input)
		if tc.ok {
			assert.NoError(t, err, "installments %q should be valid", tc.input)
		} else {
			assert.Error(t, err, "installments %q should be invalid", tc.input)
		}
	}
}

func TestDeriveFormato(t *testing.T) {
	cuotas := "3/6"
	empty := ""

	assert.Equal(t, FormatoCuotas, DeriveFormato(&cuotas))
	assert.Equal(t, FormatoContado, DeriveFormato(&empty))
	assert.Equal(t, FormatoContado, DeriveFormato(nil))
}
