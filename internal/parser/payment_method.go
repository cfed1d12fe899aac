package parser

import "regexp"

// Detected payment-method labels. These are display labels matched against
// the user's stored payment methods during preview, not database values.
const (
	PaymentMethodCash          = "Efectivo"
	PaymentMethodVisaGalicia   = "Visa Galicia"
	PaymentMethodVisaSantander = "Visa Santander"
	PaymentMethodVisaMacro     = "Visa Macro"
	PaymentMethodAmexGalicia   = "Amex Galicia"
	PaymentMethodMastercard    = "Mastercard"
	PaymentMethodTransfer      = "Transferencia"
	PaymentMethodDebit         = "Débito"
	PaymentMethodSantander     = "Santander"
	PaymentMethodGalicia       = "Galicia"
	PaymentMethodMacro         = "Macro"
	PaymentMethodMercadoPago   = "Mercado Pago"
	PaymentMethodUala          = "Ualá"
)

// paymentMethodRule pairs a label with the pattern that selects it. Rules are
// evaluated strictly in order: compound brand+bank patterns must run before
// generic brand patterns, and brand patterns before loose keywords, otherwise
// a description like "Efectivo Carla amex" would resolve to cash instead of
// the card that actually paid it.
type paymentMethodRule struct {
	label   string
	pattern *regexp.Regexp
}

var paymentMethodRules = []paymentMethodRule{
	// specific brand + bank combinations
	{PaymentMethodVisaGalicia, regexp.MustCompile(`(?i)visa\s*gal`)},
	{PaymentMethodVisaSantander, regexp.MustCompile(`(?i)visa\s*san`)},
	{PaymentMethodVisaMacro, regexp.MustCompile(`(?i)visa\s*mac`)},
	{PaymentMethodVisaGalicia, regexp.MustCompile(`(?i)\bvisa[\s-]*g\b`)},
	{PaymentMethodVisaSantander, regexp.MustCompile(`(?i)\bvisa[\s-]*s\b`)},
	{PaymentMethodVisaMacro, regexp.MustCompile(`(?i)\bvisa[\s-]*m\b`)},

	// generic brands resolve to the default bank variant
	{PaymentMethodVisaGalicia, regexp.MustCompile(`(?i)\bvisa\b`)},
	{PaymentMethodAmexGalicia, regexp.MustCompile(`(?i)\bamex\b|american\s+express`)},

	// single-keyword table
	{PaymentMethodMastercard, regexp.MustCompile(`(?i)\bmaster\s*card\b`)},
	{PaymentMethodTransfer, regexp.MustCompile(`(?i)\btransferencia\b|\btransfer\b`)},
	{PaymentMethodDebit, regexp.MustCompile(`(?i)\bd[eé]bito\b|\bdebit\b`)},
	{PaymentMethodSantander, regexp.MustCompile(`(?i)\bsantander\b`)},
	{PaymentMethodGalicia, regexp.MustCompile(`(?i)\bgalicia\b`)},
	{PaymentMethodMacro, regexp.MustCompile(`(?i)\bmacro\b`)},
	{PaymentMethodMercadoPago, regexp.MustCompile(`(?i)mercado\s*pago\b`)},
	{PaymentMethodUala, regexp.MustCompile(`(?i)\bual[aá]\b`)},
	{PaymentMethodCash, regexp.MustCompile(`(?i)\befectivo\b|\bcash\b`)},
}

// DetectPaymentMethod resolves a payment-method label from a transaction
// description. Income rows always resolve to the cash label since deposits
// carry no card information. The second return value is false when no rule
// matched and the cash fallback was applied.
func DetectPaymentMethod(description, transactionType string) (string, bool) {
	if transactionType == TypeIncome {
		return PaymentMethodCash, true
	}

	for _, rule := range paymentMethodRules {
		if rule.pattern.MatchString(description) {
			return rule.label, true
		}
	}
	return PaymentMethodCash, false
}
