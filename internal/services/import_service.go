package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finanzas-api/internal/dto"
	"finanzas-api/internal/extractor"
	"finanzas-api/internal/models"
	"finanzas-api/internal/parser"
	"finanzas-api/internal/parser/bankpdf"
	"finanzas-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// autoCategoryMaxRunes caps the name of categories auto-created from a
// transaction description.
const autoCategoryMaxRunes = 40

// ErrInvalidFilters indicates the caller supplied filters that could not be
// parsed, such as a malformed date.
var ErrInvalidFilters = errors.New("invalid filters")

// importService implements ImportServiceInterface
type importService struct {
	categoryRepo      repositories.CategoryRepositoryInterface
	paymentMethodRepo repositories.PaymentMethodRepositoryInterface
	transactionRepo   repositories.TransactionRepositoryInterface
	logger            *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	categoryRepo repositories.CategoryRepositoryInterface,
	paymentMethodRepo repositories.PaymentMethodRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) ImportServiceInterface {
	return &importService{
		categoryRepo:      categoryRepo,
		paymentMethodRepo: paymentMethodRepo,
		transactionRepo:   transactionRepo,
		logger:            logger,
	}
}

// PreviewCSV parses a CSV export and returns the candidate transactions for
// review. Previewing persists nothing and can be repeated freely.
func (s *importService) PreviewCSV(userID uuid.UUID, data []byte, filters dto.ImportFilters) (*dto.ImportPreviewResponse, error) {
	timer := prometheus.NewTimer(previewDuration.WithLabelValues("csv"))
	defer timer.ObserveDuration()

	rows, err := parser.ParseCSV(data)
	if err != nil {
		return nil, err
	}

	parsedFilters, err := parseFilters(filters)
	if err != nil {
		return nil, err
	}
	rows = parser.ApplyFilters(rows, parsedFilters)

	response, err := s.buildPreview(userID, rows, true)
	if err != nil {
		return nil, err
	}
	response.Warnings = append(response.Warnings, parser.CSVWarnings(rows)...)

	importPreviewsTotal.WithLabelValues("csv").Inc()
	s.logger.Info("csv preview generated",
		"user_id", userID,
		"rows", len(rows),
		"warnings", len(response.Warnings))
	return response, nil
}

// PreviewPDF extracts text from a PDF statement, parses it with the detected
// bank's parser and returns the candidate transactions for review.
func (s *importService) PreviewPDF(userID uuid.UUID, data []byte, filters dto.ImportFilters) (*dto.ImportPreviewResponse, error) {
	timer := prometheus.NewTimer(previewDuration.WithLabelValues("pdf"))
	defer timer.ObserveDuration()

	text, err := extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	result := bankpdf.Parse(text)

	parsedFilters, err := parseFilters(filters)
	if err != nil {
		return nil, err
	}
	rows := parser.ApplyFilters(result.Transactions, parsedFilters)

	response, err := s.buildPreview(userID, rows, false)
	if err != nil {
		return nil, err
	}
	response.Warnings = append(response.Warnings, result.Warnings...)
	response.Bank = string(result.Bank)
	if result.Period != nil {
		response.Period = &dto.StatementPeriod{Month: result.Period.Month, Year: result.Period.Year}
	}

	importPreviewsTotal.WithLabelValues("pdf").Inc()
	s.logger.Info("pdf preview generated",
		"user_id", userID,
		"bank", result.Bank,
		"rows", len(rows),
		"warnings", len(response.Warnings))
	return response, nil
}

// buildPreview assembles preview rows with suggestion matching against the
// user's existing categories and payment methods. Payment-method suggestions
// only make sense for CSV rows: PDF statements already carry the issuing
// card as their method.
func (s *importService) buildPreview(userID uuid.UUID, rows []parser.ParsedTransaction, suggestMethods bool) (*dto.ImportPreviewResponse, error) {
	categories, err := s.categoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	paymentMethods, err := s.paymentMethodRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	preview := make([]dto.PreviewRow, 0, len(rows))
	summary := dto.PreviewSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, row := range rows {
		previewRow := dto.PreviewRow{
			Row:                    row.OriginalRow,
			Date:                   row.Date,
			Type:                   row.Type,
			Description:            row.Description,
			Amount:                 row.Amount,
			Category:               row.Category,
			PaymentMethod:          row.PaymentMethod,
			PaymentMethodDefaulted: row.PaymentMethodDefaulted,
			Installments:           row.Installments,
			Formato:                models.DeriveFormato(row.Installments),
		}

		if id := suggestCategory(categories, row); id != nil {
			previewRow.SuggestedCategoryID = id
		}
		if suggestMethods {
			if id := suggestPaymentMethod(paymentMethods, row.PaymentMethod); id != nil {
				previewRow.SuggestedPaymentMethodID = id
			}
		}

		summary.Total++
		if row.Type == parser.TypeIncome {
			summary.Incomes++
			summary.TotalIncome = summary.TotalIncome.Add(row.Amount)
		} else {
			summary.Expenses++
			summary.TotalExpense = summary.TotalExpense.Add(row.Amount)
		}
		preview = append(preview, previewRow)
	}

	return &dto.ImportPreviewResponse{
		Preview:                 preview,
		Summary:                 summary,
		AvailableCategories:     categoryOptions(categories),
		AvailablePaymentMethods: paymentMethodOptions(paymentMethods),
	}, nil
}

// Confirm persists the reviewed rows. Rows are processed strictly in order
// and each failure is isolated: a bad row is reported and skipped while the
// rest of the batch goes through.
func (s *importService) Confirm(userID uuid.UUID, req *dto.ConfirmImportRequest) (*dto.ImportSummary, error) {
	categories, err := s.categoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	// request-scoped cache so repeated names hit the database once
	categoryIDs := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	var importParentID *uuid.UUID
	if req.CreateMissingCategories {
		parent, _, err := s.categoryRepo.FindOrCreate(userID, models.DefaultImportParentName, nil)
		if err != nil {
			return nil, err
		}
		importParentID = &parent.ID
	}

	summary := &dto.ImportSummary{}
	for i, txn := range req.Transactions {
		// Error reports reference the source row or line when the client
		// carried it over from the preview.
		row := txn.Row
		if row == 0 {
			row = i + 1
		}
		if err := s.importOne(userID, txn, categoryIDs, importParentID, req.CreateMissingCategories, summary); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, dto.RowError{Row: row, Message: err.Error()})
			failedRowsTotal.Inc()
			continue
		}
		summary.Imported++
		importedRowsTotal.Inc()
	}

	s.logger.Info("import confirmed",
		"user_id", userID,
		"imported", summary.Imported,
		"failed", summary.Failed,
		"new_categories", summary.NewCategoriesCreated)
	return summary, nil
}

func (s *importService) importOne(
	userID uuid.UUID,
	txn dto.ConfirmTransaction,
	categoryIDs map[string]uuid.UUID,
	importParentID *uuid.UUID,
	createMissing bool,
	summary *dto.ImportSummary,
) error {
	date, err := parser.ParseDate(txn.Date, parser.CSVDateFormats)
	if err != nil {
		return err
	}

	amount, err := parser.ParseAmount(txn.Amount)
	if err != nil {
		return err
	}

	categoryID, err := s.resolveCategory(userID, txn, categoryIDs, importParentID, createMissing, summary)
	if err != nil {
		return err
	}

	var paymentMethodID *uuid.UUID
	if txn.PaymentMethodID != nil {
		id, err := s.resolvePaymentMethod(userID, *txn.PaymentMethodID)
		if err != nil {
			return err
		}
		paymentMethodID = id
	}

	model := &models.Transaction{
		UserID:          userID,
		Date:            date,
		Type:            txn.Type,
		Description:     strings.TrimSpace(txn.Description),
		Amount:          amount,
		CategoryID:      categoryID,
		PaymentMethodID: paymentMethodID,
		Installments:    txn.Installments,
	}

	// Installment purchases start their own series so later statements can
	// attach the remaining installments to it.
	if txn.Installments != nil {
		seriesID := uuid.New()
		model.SeriesID = &seriesID
	}

	return s.transactionRepo.Create(model)
}

// resolveCategory finds the row's category by explicit ID, by name, or by
// auto-creating it from the description under the import parent.
func (s *importService) resolveCategory(
	userID uuid.UUID,
	txn dto.ConfirmTransaction,
	categoryIDs map[string]uuid.UUID,
	importParentID *uuid.UUID,
	createMissing bool,
	summary *dto.ImportSummary,
) (uuid.UUID, error) {
	if txn.CategoryID != nil {
		id, err := uuid.Parse(*txn.CategoryID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid category id %q", *txn.CategoryID)
		}
		category, err := s.categoryRepo.GetByID(id)
		if err != nil {
			return uuid.Nil, err
		}
		if category.UserID != userID {
			return uuid.Nil, repositories.ErrCategoryNotFound
		}
		return category.ID, nil
	}

	name := strings.TrimSpace(txn.Category)
	if name == "" {
		name = truncateRunes(strings.TrimSpace(txn.Description), autoCategoryMaxRunes)
	}
	if name == "" {
		return uuid.Nil, repositories.ErrCategoryNotFound
	}

	if id, ok := categoryIDs[strings.ToLower(name)]; ok {
		return id, nil
	}
	if !createMissing {
		return uuid.Nil, fmt.Errorf("category %q not found", name)
	}

	category, created, err := s.categoryRepo.FindOrCreate(userID, name, importParentID)
	if err != nil {
		return uuid.Nil, err
	}
	categoryIDs[strings.ToLower(name)] = category.ID
	if created {
		summary.NewCategoriesCreated++
		categoriesCreatedTotal.Inc()
	}
	return category.ID, nil
}

func (s *importService) resolvePaymentMethod(userID uuid.UUID, raw string) (*uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid payment method id %q", raw)
	}
	paymentMethod, err := s.paymentMethodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if paymentMethod.UserID != userID {
		return nil, repositories.ErrPaymentMethodNotFound
	}
	return &paymentMethod.ID, nil
}

// parseFilters converts wire-format filters into parser filters.
func parseFilters(filters dto.ImportFilters) (parser.Filters, error) {
	var parsed parser.Filters
	if filters.DateFrom != "" {
		from, err := parser.ParseDate(filters.DateFrom, parser.CSVDateFormats)
		if err != nil {
			return parsed, fmt.Errorf("%w: invalid date_from: %v", ErrInvalidFilters, err)
		}
		parsed.DateFrom = &from
	}
	if filters.DateTo != "" {
		to, err := parser.ParseDate(filters.DateTo, parser.CSVDateFormats)
		if err != nil {
			return parsed, fmt.Errorf("%w: invalid date_to: %v", ErrInvalidFilters, err)
		}
		parsed.DateTo = &to
	}
	parsed.PaymentMethods = filters.PaymentMethods
	return parsed, nil
}

// suggestCategory matches the row's category name, or failing that its
// description, against existing categories by exact case-insensitive name.
func suggestCategory(categories []models.Category, row parser.ParsedTransaction) *string {
	name := row.Category
	if name == "" {
		name = row.Description
	}
	for i := range categories {
		if categories[i].NameMatches(name) {
			id := categories[i].ID.String()
			return &id
		}
	}
	return nil
}

// suggestPaymentMethod matches the detected label against existing payment
// methods by substring in either direction, so "Visa" matches a stored
// "Visa Galicia" and vice versa.
func suggestPaymentMethod(paymentMethods []models.PaymentMethod, label string) *string {
	if label == "" {
		return nil
	}
	for i := range paymentMethods {
		if paymentMethods[i].NameContains(label) {
			id := paymentMethods[i].ID.String()
			return &id
		}
	}
	return nil
}

func categoryOptions(categories []models.Category) []dto.CategoryOption {
	options := make([]dto.CategoryOption, 0, len(categories))
	for _, c := range categories {
		option := dto.CategoryOption{ID: c.ID.String(), Name: c.Name}
		if c.ParentID != nil {
			parentID := c.ParentID.String()
			option.ParentID = &parentID
		}
		options = append(options, option)
	}
	return options
}

func paymentMethodOptions(paymentMethods []models.PaymentMethod) []dto.PaymentMethodOption {
	options := make([]dto.PaymentMethodOption, 0, len(paymentMethods))
	for _, p := range paymentMethods {
		options = append(options, dto.PaymentMethodOption{ID: p.ID.String(), Name: p.Name})
	}
	return options
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
