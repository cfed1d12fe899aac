package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types produced by the parsers. Values match the stored
// transaction model so the orchestrator can pass them through unchanged.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var (
	ErrHeaderFormat = errors.New("header does not match expected columns")
	ErrRowFormat    = errors.New("row does not match expected columns")
	ErrEmptyFile    = errors.New("file contains no data rows")
)

// ParsedTransaction is the normalized output unit of every statement parser.
// Instances are immutable once produced; OriginalRow is the 1-based position
// in the source file used for error reporting and re-mapping on confirm.
type ParsedTransaction struct {
	Date                   time.Time
	Type                   string
	Description            string
	Amount                 decimal.Decimal
	Category               string
	PaymentMethod          string
	PaymentMethodDefaulted bool
	Installments           *string
	OriginalRow            int
}

// Filters restricts a parsed row set before preview. Date bounds are
// inclusive; the payment-method filter is a case-insensitive membership test
// against the detected label.
type Filters struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	PaymentMethods []string
}

// requiredColumns are the expected CSV header names, lowercased. Extra
// columns are ignored; any missing required column fails the whole parse.
var requiredColumns = []string{"fecha", "tipo", "categoria", "descripcion", "importe"}

// incomeKeywords force the income type regardless of the stated Tipo column.
// Statement exports routinely mislabel payroll deposits as expenses.
var incomeKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsueldo\b`),
	regexp.MustCompile(`(?i)\bsalario\b`),
	regexp.MustCompile(`(?i)\bhaberes\b`),
	regexp.MustCompile(`(?i)\bhonorarios\b`),
	regexp.MustCompile(`(?i)\bjubilaci[oó]n\b`),
	regexp.MustCompile(`(?i)\bpensi[oó]n\b`),
}

// ParseCSV converts a CSV statement export into normalized candidate
// transactions. The parse is strict all-or-nothing: a malformed header
// usually means every row is wrong, so any header or row failure aborts the
// whole file.
func ParseCSV(data []byte) ([]ParsedTransaction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderFormat, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	columns, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 1 {
		return nil, ErrEmptyFile
	}

	rows := make([]ParsedTransaction, 0, len(records)-1)
	for i, record := range records[1:] {
		// 1-based, accounting for the header row
		rowNumber := i + 2

		row, err := parseCSVRow(record, columns, rowNumber)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// mapHeader resolves required column names to indexes. All missing columns
// are reported in a single fatal error.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		columns[normalizeColumn(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing %s", ErrHeaderFormat, strings.Join(missing, ", "))
	}
	return columns, nil
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")
	return replacer.Replace(name)
}

func parseCSVRow(record []string, columns map[string]int, rowNumber int) (ParsedTransaction, error) {
	field := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(record) {
			return "", fmt.Errorf("%w: row %d has no %s column", ErrRowFormat, rowNumber, name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	rawDate, err := field("fecha")
	if err != nil {
		return ParsedTransaction{}, err
	}
	rawType, err := field("tipo")
	if err != nil {
		return ParsedTransaction{}, err
	}
	category, err := field("categoria")
	if err != nil {
		return ParsedTransaction{}, err
	}
	description, err := field("descripcion")
	if err != nil {
		return ParsedTransaction{}, err
	}
	rawAmount, err := field("importe")
	if err != nil {
		return ParsedTransaction{}, err
	}

	date, err := ParseDate(rawDate, CSVDateFormats)
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("row %d: %w", rowNumber, err)
	}

	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("row %d: %w", rowNumber, err)
	}

	txnType := deriveType(rawType, description)
	paymentMethod, matched := DetectPaymentMethod(description, txnType)

	return ParsedTransaction{
		Date:                   date,
		Type:                   txnType,
		Description:            description,
		Amount:                 amount,
		Category:               category,
		PaymentMethod:          paymentMethod,
		PaymentMethodDefaulted: !matched,
		Installments:           DetectInstallments(description),
		OriginalRow:            rowNumber,
	}, nil
}

// deriveType reads the Tipo column but lets income keywords in the
// description override it.
func deriveType(rawType, description string) string {
	for _, keyword := range incomeKeywords {
		if keyword.MatchString(description) {
			return TypeIncome
		}
	}
	if strings.Contains(strings.ToLower(rawType), "ingreso") {
		return TypeIncome
	}
	return TypeExpense
}

// ApplyFilters returns the subsequence of rows passing all configured
// filters.
func ApplyFilters(rows []ParsedTransaction, filters Filters) []ParsedTransaction {
	methods := make(map[string]bool, len(filters.PaymentMethods))
	for _, m := range filters.PaymentMethods {
		methods[strings.ToLower(strings.TrimSpace(m))] = true
	}

	filtered := make([]ParsedTransaction, 0, len(rows))
	for _, row := range rows {
		if filters.DateFrom != nil && row.Date.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && row.Date.After(*filters.DateTo) {
			continue
		}
		if len(methods) > 0 && !methods[strings.ToLower(row.PaymentMethod)] {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// CSVWarnings reports data-quality concerns across a parsed row set.
func CSVWarnings(rows []ParsedTransaction) []string {
	var warnings []string

	defaulted := 0
	missingCategory := 0
	for _, row := range rows {
		if row.PaymentMethodDefaulted {
			defaulted++
		}
		if row.Category == "" {
			missingCategory++
		}
	}

	if defaulted > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d row(s) defaulted to payment method %q; review them before confirming", defaulted, PaymentMethodCash))
	}
	if missingCategory > 0 {
		warnings = append(warnings, fmt.Sprintf("%d row(s) have no category", missingCategory))
	}
	return warnings
}
