package bankpdf

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finanzas-api/internal/parser"
)

var suspiciouslySmall = decimal.NewFromInt(1)

// qualityWarnings flags extraction artifacts the user should review before
// confirming: no movements at all, sub-unit amounts that usually mean a
// truncated number, and dates in the future.
func qualityWarnings(transactions []parser.ParsedTransaction) []string {
	var warnings []string

	if len(transactions) == 0 {
		warnings = append(warnings, "no transactions could be extracted from the statement")
		return warnings
	}

	small := 0
	future := 0
	today := time.Now().UTC()
	for _, txn := range transactions {
		if txn.Amount.LessThan(suspiciouslySmall) {
			small++
		}
		if txn.Date.After(today) {
			future++
		}
	}

	if small > 0 {
		warnings = append(warnings, fmt.Sprintf("%d transaction(s) have amounts below 1.00; the amount column may have been misread", small))
	}
	if future > 0 {
		warnings = append(warnings, fmt.Sprintf("%d transaction(s) are dated in the future", future))
	}
	return warnings
}
