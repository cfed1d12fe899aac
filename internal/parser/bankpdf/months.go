package bankpdf

import "strings"

// spanishMonths maps lowercase Spanish month names to their number.
var spanishMonths = map[string]int{
	"enero":      1,
	"febrero":    2,
	"marzo":      3,
	"abril":      4,
	"mayo":       5,
	"junio":      6,
	"julio":      7,
	"agosto":     8,
	"septiembre": 9,
	"setiembre":  9,
	"octubre":    10,
	"noviembre":  11,
	"diciembre":  12,
}

// monthAlternation is the regex alternation of every known month name.
var monthAlternation = func() string {
	names := []string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "setiembre", "octubre",
		"noviembre", "diciembre",
	}
	return strings.Join(names, "|")
}()

func monthNumber(name string) (int, bool) {
	n, ok := spanishMonths[strings.ToLower(name)]
	return n, ok
}
