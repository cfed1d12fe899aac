package bankpdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"finanzas-api/internal/parser"
)

// Santander statements group movements under a "YY MonthName" section header
// and print only the day on each movement line:
//
//	26 Agosto
//	24 004213 * COMPRA SUPERMERCADO C.03/06 1.249,16
//	25 004214 * PAGO RECIBIDO 50.000,00-
//
// A trailing "-" on the amount marks a payment or credit.
var (
	santanderSectionHeader = regexp.MustCompile(`(?i)^(\d{2})\s+(` + monthAlternation + `)$`)
	santanderMovement      = regexp.MustCompile(`^(\d{1,2})\s+(\d{3,})\s+\*?\s*(.+?)\s+([\d.,]+)(-?)$`)
)

type santanderParser struct{}

func (santanderParser) parse(lines []string) ([]parser.ParsedTransaction, []string) {
	var (
		transactions []parser.ParsedTransaction
		warnings     []string
		month        int
		year         int
	)

	for i, line := range lines {
		if m := santanderSectionHeader.FindStringSubmatch(line); m != nil {
			yy, _ := strconv.Atoi(m[1])
			if n, ok := monthNumber(m[2]); ok {
				month = n
				year = 2000 + yy
			}
			continue
		}

		m := santanderMovement.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if month == 0 {
			warnings = append(warnings, fmt.Sprintf("line %d looks like a movement but no month header was seen; skipped", i+1))
			continue
		}

		day, _ := strconv.Atoi(m[1])
		if day < 1 || day > 31 {
			continue
		}

		amount, err := parser.ParseAmount(m[4])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: unreadable amount %q; skipped", i+1, m[4]))
			continue
		}

		description := strings.TrimSpace(m[3])
		txnType := parser.TypeExpense
		if m[5] == "-" {
			txnType = parser.TypeIncome
		}

		transactions = append(transactions, parser.ParsedTransaction{
			Date:          time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			Type:          txnType,
			Description:   description,
			Amount:        amount,
			PaymentMethod: parser.PaymentMethodVisaSantander,
			Installments:  parser.DetectStatementInstallments(description),
			OriginalRow:   i + 1,
		})
	}
	return transactions, warnings
}
