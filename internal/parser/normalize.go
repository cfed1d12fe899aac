package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountFormat = errors.New("amount is not a valid number")
	ErrDateFormat   = errors.New("date does not match any known format")
)

// CSVDateFormats are the layouts tried, in order, for CSV statement dates.
var CSVDateFormats = []string{
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"02-01-06",
	"2006-01-02",
}

// ParseAmount normalizes an amount string whose thousands/decimal separators
// follow either regional convention ("1.234,56" or "1,234.56") and returns
// the absolute value.
//
// The separator that occurs last is taken as the decimal separator, with one
// exception: a lone dot followed by exactly three digits and no comma is
// treated as a thousands separator ("7.000" is seven thousand, "7.50" is
// seven and a half). This heuristic is load-bearing for historical data;
// do not change it.
func ParseAmount(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrAmountFormat, raw)
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	dotCount := strings.Count(s, ".")
	commaCount := strings.Count(s, ",")

	switch {
	case lastComma > lastDot:
		if commaCount > 1 && dotCount == 0 {
			// several commas can only be thousands separators
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", -1)
		}
	case lastDot > lastComma:
		if dotCount == 1 && commaCount == 0 && isThousandsDot(s, lastDot) {
			s = strings.ReplaceAll(s, ".", "")
		} else if dotCount > 1 && commaCount == 0 {
			s = strings.ReplaceAll(s, ".", "")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	// sign is carried by the transaction type, never by the numeric value
	s = strings.ReplaceAll(s, "-", "")
	if s == "" || s == "." {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrAmountFormat, raw)
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrAmountFormat, raw)
	}
	return value.Abs(), nil
}

// isThousandsDot reports whether the dot at index i is followed by exactly
// three trailing digits.
func isThousandsDot(s string, i int) bool {
	tail := s[i+1:]
	if len(tail) != 3 {
		return false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseDate tries each layout in order and returns the first structural
// match. Two-digit years are expanded by adding 2000. When no layout matches
// a generic day/month/year fallback is attempted before failing.
func ParseDate(raw string, layouts []string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, raw)
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return expandYear(t), nil
	}

	if t, ok := genericDate(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, raw)
}

// expandYear shifts two-digit years into the 2000s.
func expandYear(t time.Time) time.Time {
	if t.Year() >= 1969 && t.Year() < 2000 {
		return t.AddDate(100, 0, 0)
	}
	return t
}

// genericDate is the lenient fallback: split on "/" or "-" and decide
// component order by the width of the first field.
func genericDate(s string) (time.Time, bool) {
	sep := "/"
	if !strings.Contains(s, "/") {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		day, month, year = nums[0], nums[1], nums[2]
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
