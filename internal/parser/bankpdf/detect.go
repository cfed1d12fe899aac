package bankpdf

import "strings"

// bankPhrase maps a distinguishing phrase to a bank. Phrases are checked in
// order: bank CUITs and full names come before looser brand names because an
// Amex statement issued through a bank also mentions the bank.
type bankPhrase struct {
	phrase string
	bank   Bank
}

var bankPhrases = []bankPhrase{
	{"30-50000845-4", BankSantander}, // Banco Santander CUIT
	{"banco santander", BankSantander},
	{"santander río", BankSantander},
	{"santander rio", BankSantander},
	{"30-50000173-5", BankGalicia}, // Banco Galicia CUIT
	{"banco galicia", BankGalicia},
	{"banco de galicia", BankGalicia},
	{"american express", BankAmex},
	{"amex", BankAmex},
	{"santander", BankSantander},
	{"galicia", BankGalicia},
}

// DetectBank identifies the issuing bank from the statement text.
func DetectBank(rawText string) Bank {
	text := strings.ToLower(rawText)
	for _, candidate := range bankPhrases {
		if strings.Contains(text, candidate.phrase) {
			return candidate.bank
		}
	}
	return BankUnknown
}
