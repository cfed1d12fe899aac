package bankpdf

import (
	"regexp"
	"strconv"
	"time"

	"finanzas-api/internal/parser"
)

var (
	// "del 25/07 al 24/08/26" closing-cycle phrasing; the end date wins
	periodRange = regexp.MustCompile(`(?i)del\s+(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\s+al\s+(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)

	// "Resumen Agosto 2026" literal month naming
	periodLiteral = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\s+(\d{4})\b`)
)

// ExtractStatementPeriod decides which month a statement belongs to. It tries
// the closing-cycle date range first, then a literal "month year" mention,
// and finally falls back to the most frequent month among the parsed
// transactions. Frequency ties resolve to the month encountered first.
func ExtractStatementPeriod(rawText string, transactions []parser.ParsedTransaction) *Period {
	if m := periodRange.FindStringSubmatch(rawText); m != nil {
		month, _ := strconv.Atoi(m[5])
		if month >= 1 && month <= 12 {
			year := rangeYear(m[6], m[3])
			return &Period{Month: month, Year: year}
		}
	}

	if m := periodLiteral.FindStringSubmatch(rawText); m != nil {
		if month, ok := monthNumber(m[1]); ok {
			year, _ := strconv.Atoi(m[2])
			return &Period{Month: month, Year: year}
		}
	}

	return modePeriod(transactions)
}

// rangeYear picks the year for a date range, preferring the end date's year,
// then the start date's, then the current year.
func rangeYear(endYear, startYear string) int {
	for _, raw := range []string{endYear, startYear} {
		if raw == "" {
			continue
		}
		y, _ := strconv.Atoi(raw)
		if y < 100 {
			y += 2000
		}
		return y
	}
	return time.Now().UTC().Year()
}

// modePeriod returns the most frequent (month, year) across the
// transactions.
func modePeriod(transactions []parser.ParsedTransaction) *Period {
	if len(transactions) == 0 {
		return nil
	}

	counts := make(map[Period]int)
	var order []Period
	for _, txn := range transactions {
		p := Period{Month: int(txn.Date.Month()), Year: txn.Date.Year()}
		if _, seen := counts[p]; !seen {
			order = append(order, p)
		}
		counts[p]++
	}

	best := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return &best
}
