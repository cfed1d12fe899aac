package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportFilters is the optional "filters" form field accompanying a
// statement upload. Dates use the DD/MM/YYYY convention of the source files.
type ImportFilters struct {
	DateFrom       string   `json:"date_from,omitempty"`
	DateTo         string   `json:"date_to,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
}

// PreviewRow is one candidate transaction shown to the user before
// confirmation. Suggested IDs are filled in when the detected names match
// something the user already has.
type PreviewRow struct {
	Row                      int             `json:"row"`
	Date                     time.Time       `json:"date"`
	Type                     string          `json:"type"`
	Description              string          `json:"description"`
	Amount                   decimal.Decimal `json:"amount"`
	Category                 string          `json:"category,omitempty"`
	SuggestedCategoryID      *string         `json:"suggested_category_id,omitempty"`
	PaymentMethod            string          `json:"payment_method,omitempty"`
	PaymentMethodDefaulted   bool            `json:"payment_method_defaulted,omitempty"`
	SuggestedPaymentMethodID *string         `json:"suggested_payment_method_id,omitempty"`
	Installments             *string         `json:"installments,omitempty"`
	Formato                  string          `json:"formato"`
}

// CategoryOption is a selectable category in the preview response.
type CategoryOption struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// PaymentMethodOption is a selectable payment method in the preview
// response.
type PaymentMethodOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatementPeriod is the month a PDF statement covers.
type StatementPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PreviewSummary aggregates the preview rows.
type PreviewSummary struct {
	Total        int             `json:"total"`
	Incomes      int             `json:"incomes"`
	Expenses     int             `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// ImportPreviewResponse is the payload of both preview endpoints. Bank and
// Period are only present for PDF statements.
type ImportPreviewResponse struct {
	Preview                 []PreviewRow          `json:"preview"`
	Summary                 PreviewSummary        `json:"summary"`
	Warnings                []string              `json:"warnings,omitempty"`
	AvailableCategories     []CategoryOption      `json:"available_categories"`
	AvailablePaymentMethods []PaymentMethodOption `json:"available_payment_methods"`
	Bank                    string                `json:"bank,omitempty"`
	Period                  *StatementPeriod      `json:"period,omitempty"`
}

// ConfirmTransaction is one user-reviewed row submitted for import. Field
// problems (bad dates, malformed installments, unknown ids) are not request
// validation errors: each row is checked individually during the import so a
// bad row never rejects the batch. Row carries the source row or line number
// from the preview; it defaults to the batch position when absent.
type ConfirmTransaction struct {
	Row             int     `json:"row,omitempty"`
	Date            string  `json:"date"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	Amount          string  `json:"amount"`
	Category        string  `json:"category,omitempty"`
	CategoryID      *string `json:"category_id,omitempty"`
	PaymentMethodID *string `json:"payment_method_id,omitempty"`
	Installments    *string `json:"installments,omitempty"`
}

// ConfirmImportRequest is the body of both confirm endpoints. Only the batch
// shape is validated here.
type ConfirmImportRequest struct {
	Transactions            []ConfirmTransaction `json:"transactions" validate:"required,min=1"`
	CreateMissingCategories bool                 `json:"create_missing_categories"`
}

// RowError reports why a single row failed during confirmation.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary is the result of a confirmed import. A partially failed
// batch still reports the rows that made it in.
type ImportSummary struct {
	Imported             int        `json:"imported"`
	Failed               int        `json:"failed"`
	NewCategoriesCreated int        `json:"new_categories_created"`
	Errors               []RowError `json:"errors,omitempty"`
}
