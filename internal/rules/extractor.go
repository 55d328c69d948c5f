package rules

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Extraction is the structured result of parsing a transaction message.
// A zero Amount means no numeric token was recognized; callers must treat
// that as "extraction failed", never as a zero-value transaction.
type Extraction struct {
	Description string
	Amount      decimal.Decimal
}

// amountPattern matches the first monetary token: digits with an optional
// comma or period decimal part, optionally followed by a currency word.
var amountPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?)\s*(?:reais?|real|r\$|mil)?`)

var thousand = decimal.NewFromInt(1000)

var (
	expenseTriggers = []string{
		"gastei", "paguei", "comprei", "despesa", "gasto", "saiu", "débito",
	}
	expenseStopwords = []string{
		"reais", "real", "r$", "mil", "com", "de", "para", "no", "na",
	}

	incomeTriggers = []string{
		"recebi", "ganhei", "renda", "receita", "entrou", "crédito",
	}
	incomeStopwords = []string{
		"reais", "real", "r$", "mil", "de", "do", "da", "por",
	}
)

// Placeholder descriptions used when nothing meaningful survives extraction.
const (
	UnspecifiedExpense = "Gasto não especificado"
	UnspecifiedIncome  = "Receita não especificada"
)

// ExtractExpense parses an expense message into amount and description.
func ExtractExpense(text string) Extraction {
	return extract(text, expenseTriggers, expenseStopwords, UnspecifiedExpense)
}

// ExtractIncome parses an income message into amount and description.
func ExtractIncome(text string) Extraction {
	return extract(text, incomeTriggers, incomeStopwords, UnspecifiedIncome)
}

func extract(text string, triggers, stopwords []string, placeholder string) Extraction {
	amount := decimal.Zero
	remainder := text

	if loc := amountPattern.FindStringSubmatchIndex(text); loc != nil {
		token := text[loc[2]:loc[3]]
		// Comma is the decimal separator in pt-BR; normalize to a period.
		if parsed, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ".")); err == nil {
			amount = parsed
		}
		remainder = text[:loc[0]] + " " + text[loc[1]:]
	}

	// "mil" anywhere in the message scales the value, regardless of where
	// the numeric token appeared.
	if !amount.IsZero() && strings.Contains(strings.ToLower(text), "mil") {
		amount = amount.Mul(thousand)
	}

	description := stripWords(remainder, triggers, stopwords)
	if len([]rune(description)) < 3 {
		description = placeholder
	}

	return Extraction{Amount: amount, Description: description}
}

// stripWords removes trigger and stop words token-wise, preserving the
// order of whatever remains.
func stripWords(text string, triggers, stopwords []string) string {
	drop := make(map[string]bool, len(triggers)+len(stopwords))
	for _, w := range triggers {
		drop[w] = true
	}
	for _, w := range stopwords {
		drop[w] = true
	}

	var kept []string
	for _, token := range strings.Fields(text) {
		if drop[strings.ToLower(strings.Trim(token, ".,!?"))] {
			continue
		}
		kept = append(kept, token)
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}
