package bankpdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"finanzas-api/internal/parser"
)

// Galicia statements come in two shapes depending on how the PDF text was
// reconstructed. Compact layout keeps everything on one line:
//
//	24-08-24*STORE 12/12 1.249,16 003495
//
// Split layout spreads one movement over three lines:
//
//	24-08-24*STORE 12/12
//	003495
//	1.249,16
var (
	galiciaCompact   = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})\s*\*?\s*(.+?)\s+([\d.,]+)(-?)\s+(\d+)$`)
	galiciaDateDesc  = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})\s*\*?\s*(.+)$`)
	galiciaReference = regexp.MustCompile(`^\d{3,}$`)
	galiciaAmount    = regexp.MustCompile(`^([\d.,]+)(-?)$`)
)

type galiciaParser struct{}

func (galiciaParser) parse(lines []string) ([]parser.ParsedTransaction, []string) {
	var (
		transactions []parser.ParsedTransaction
		warnings     []string
	)

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := galiciaCompact.FindStringSubmatch(line); m != nil {
			txn, err := galiciaTransaction(m[1], m[2], m[3], m[4], m[5], m[6], i+1)
			if err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
			transactions = append(transactions, txn)
			continue
		}

		// split layout: date+description, then reference, then amount
		m := galiciaDateDesc.FindStringSubmatch(line)
		if m == nil || i+2 >= len(lines) {
			continue
		}
		if !galiciaReference.MatchString(lines[i+1]) {
			continue
		}
		am := galiciaAmount.FindStringSubmatch(lines[i+2])
		if am == nil {
			continue
		}

		txn, err := galiciaTransaction(m[1], m[2], m[3], m[4], am[1], am[2], i+1)
		if err != nil {
			warnings = append(warnings, err.Error())
		} else {
			transactions = append(transactions, txn)
		}
		i += 2
	}
	return transactions, warnings
}

func galiciaTransaction(dd, mm, yy, description, rawAmount, sign string, lineNumber int) (parser.ParsedTransaction, error) {
	day, _ := strconv.Atoi(dd)
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yy)
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return parser.ParsedTransaction{}, fmt.Errorf("line %d: invalid date %s-%s-%s; skipped", lineNumber, dd, mm, yy)
	}

	amount, err := parser.ParseAmount(rawAmount)
	if err != nil {
		return parser.ParsedTransaction{}, fmt.Errorf("line %d: unreadable amount %q; skipped", lineNumber, rawAmount)
	}

	description = strings.TrimSpace(description)
	txnType := parser.TypeExpense
	if sign == "-" {
		txnType = parser.TypeIncome
	}

	return parser.ParsedTransaction{
		Date:          time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Type:          txnType,
		Description:   description,
		Amount:        amount,
		PaymentMethod: parser.PaymentMethodVisaGalicia,
		Installments:  parser.DetectStatementInstallments(description),
		OriginalRow:   lineNumber,
	}, nil
}
