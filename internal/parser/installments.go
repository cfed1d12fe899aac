package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// installmentRule captures an installment-plan notation. Rules are evaluated
// in order and the first valid match wins; bank-specific notations must be
// listed before the generic "n/m" pattern, which is a substring of them and
// would shadow them otherwise.
type installmentRule struct {
	name    string
	pattern *regexp.Regexp
}

// csvInstallmentRules cover the notations seen in CSV exports.
var csvInstallmentRules = []installmentRule{
	{"slash", regexp.MustCompile(`\b(\d+)/(\d+)\b`)},
	{"cuota", regexp.MustCompile(`(?i)\bcuota\s+(\d+)\s+de\s+(\d+)\b`)},
	{"installment", regexp.MustCompile(`(?i)\binstallment\s+(\d+)\s+of\s+(\d+)\b`)},
}

// statementInstallmentRules extend the CSV set with the notations that only
// appear in card statements: the Santander "C.n/m" shorthand and the Spanish
// "pago N de M" phrasing.
var statementInstallmentRules = []installmentRule{
	{"santander", regexp.MustCompile(`(?i)\bC\.\s*(\d+)/(\d+)\b`)},
	{"pago", regexp.MustCompile(`(?i)\bpago\s+(\d+)\s+de\s+(\d+)\b`)},
	{"cuota", regexp.MustCompile(`(?i)\bcuota\s+(\d+)\s+de\s+(\d+)\b`)},
	{"installment", regexp.MustCompile(`(?i)\binstallment\s+(\d+)\s+of\s+(\d+)\b`)},
	{"slash", regexp.MustCompile(`\b(\d+)/(\d+)\b`)},
}

// DetectInstallments scans a CSV description for an installment plan and
// returns it normalized to "current/total", or nil when none is present.
func DetectInstallments(description string) *string {
	return detectWithRules(description, csvInstallmentRules)
}

// DetectStatementInstallments is the statement-parser superset of
// DetectInstallments.
func DetectStatementInstallments(description string) *string {
	return detectWithRules(description, statementInstallmentRules)
}

func detectWithRules(description string, rules []installmentRule) *string {
	for _, rule := range rules {
		m := rule.pattern.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		current, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if current < 1 || total < 1 || current > total {
			continue
		}
		normalized := fmt.Sprintf("%d/%d", current, total)
		return &normalized
	}
	return nil
}
