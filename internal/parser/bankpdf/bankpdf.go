// Package bankpdf turns the raw text of a credit-card PDF statement into
// normalized transactions. Each supported bank has its own line parser; the
// entry point detects the bank from the text and dispatches to it.
package bankpdf

import (
	"fmt"
	"strings"

	"finanzas-api/internal/parser"
)

// Bank identifies the issuing bank of a statement.
type Bank string

const (
	BankSantander Bank = "santander"
	BankGalicia   Bank = "galicia"
	BankAmex      Bank = "amex"
	BankUnknown   Bank = "unknown"
)

// Period is the statement month a set of transactions belongs to.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Result is the outcome of parsing one statement. RawText is retained so a
// failed parse can still be inspected by the caller.
type Result struct {
	Bank         Bank
	Transactions []parser.ParsedTransaction
	Period       *Period
	Warnings     []string
	RawText      string
}

// lineParser converts statement text lines into transactions. Implementations
// may consume more than one line per transaction.
type lineParser interface {
	parse(lines []string) ([]parser.ParsedTransaction, []string)
}

var bankParsers = map[Bank]lineParser{
	BankSantander: santanderParser{},
	BankGalicia:   galiciaParser{},
	BankAmex:      amexParser{},
}

// Parse detects the bank and runs its line parser over the statement text. A
// parser failure never propagates: the result degrades to zero transactions
// with a warning so the caller can surface the raw text instead.
func Parse(rawText string) Result {
	result := Result{
		Bank:    DetectBank(rawText),
		RawText: rawText,
	}

	p, ok := bankParsers[result.Bank]
	if !ok {
		result.Warnings = append(result.Warnings, "could not identify the issuing bank; no transactions extracted")
		return result
	}

	transactions, warnings := safeParse(p, splitLines(rawText))
	result.Transactions = transactions
	result.Warnings = append(result.Warnings, warnings...)

	result.Period = ExtractStatementPeriod(rawText, transactions)
	result.Warnings = append(result.Warnings, qualityWarnings(transactions)...)
	return result
}

// safeParse shields the caller from panics inside a bank parser. Statement
// layouts change without notice and a bad regex match must not take the
// request down.
func safeParse(p lineParser, lines []string) (transactions []parser.ParsedTransaction, warnings []string) {
	defer func() {
		if r := recover(); r != nil {
			transactions = nil
			warnings = []string{fmt.Sprintf("statement parser failed: %v", r)}
		}
	}()
	return p.parse(lines)
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
