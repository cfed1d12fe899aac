package bankpdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"finanzas-api/internal/parser"
)

// Amex statements print one movement per line with either slash or dash
// dates, the year often omitted:
//
//	24/08 RESTAURANTE PUERTO 35.400,50
//	24-08-26 PAGO DE SALDO 120.000,00-
var (
	amexSlash = regexp.MustCompile(`^(\d{2})/(\d{2})(?:/(\d{2,4}))?\s+(.+?)\s+([\d.,]+)(-?)$`)
	amexDash  = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})\s+(.+?)\s+([\d.,]+)(-?)$`)
)

type amexParser struct{}

func (amexParser) parse(lines []string) ([]parser.ParsedTransaction, []string) {
	var (
		transactions []parser.ParsedTransaction
		warnings     []string
	)

	for i, line := range lines {
		m := amexSlash.FindStringSubmatch(line)
		if m == nil {
			m = amexDash.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}

		year := time.Now().UTC().Year()
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
			year = y
		}

		amount, err := parser.ParseAmount(m[5])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: unreadable amount %q; skipped", i+1, m[5]))
			continue
		}

		description := strings.TrimSpace(m[4])
		txnType := parser.TypeExpense
		if m[6] == "-" {
			txnType = parser.TypeIncome
		}

		transactions = append(transactions, parser.ParsedTransaction{
			Date:          time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			Type:          txnType,
			Description:   description,
			Amount:        amount,
			PaymentMethod: parser.PaymentMethodAmexGalicia,
			Installments:  parser.DetectStatementInstallments(description),
			OriginalRow:   i + 1,
		})
	}
	return transactions, warnings
}
