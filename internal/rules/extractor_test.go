package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExpense(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantAmt  string
		wantDesc string
	}{
		{
			name:     "canonical expense",
			text:     "Gastei 50 reais com supermercado",
			wantAmt:  "50",
			wantDesc: "supermercado",
		},
		{
			name:     "comma decimal separator",
			text:     "Paguei 45,90 de conta",
			wantAmt:  "45.9",
			wantDesc: "conta",
		},
		{
			name:     "thousand multiplier",
			text:     "Gastei 2 mil com aluguel",
			wantAmt:  "2000",
			wantDesc: "aluguel",
		},
		{
			name:     "period decimal separator",
			text:     "Comprei 25.50 de combustível",
			wantAmt:  "25.5",
			wantDesc: "combustível",
		},
		{
			name:     "currency symbol",
			text:     "Paguei R$ 1200 de aluguel",
			wantAmt:  "1200",
			wantDesc: "aluguel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractExpense(tt.text)
			assert.Equal(t, tt.wantAmt, got.Amount.String())
			assert.Equal(t, tt.wantDesc, got.Description)
		})
	}
}

func TestExtractExpense_MissingAmountSentinel(t *testing.T) {
	got := ExtractExpense("Gastei muito com besteira hoje")
	assert.True(t, got.Amount.IsZero(), "no numeric token must yield the zero sentinel")
}

func TestExtractExpense_ShortDescriptionPlaceholder(t *testing.T) {
	got := ExtractExpense("Gastei 30 reais")
	assert.Equal(t, "30", got.Amount.String())
	assert.Equal(t, UnspecifiedExpense, got.Description)
}

func TestExtractIncome(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantAmt  string
		wantDesc string
	}{
		{
			name:     "canonical income",
			text:     "Recebi 1000 reais de salário",
			wantAmt:  "1000",
			wantDesc: "salário",
		},
		{
			name:     "freelance income",
			text:     "Ganhei 500 de freelancer",
			wantAmt:  "500",
			wantDesc: "freelancer",
		},
		{
			name:     "thousand multiplier",
			text:     "Recebi 3 mil de salário",
			wantAmt:  "3000",
			wantDesc: "salário",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIncome(tt.text)
			assert.Equal(t, tt.wantAmt, got.Amount.String())
			assert.Equal(t, tt.wantDesc, got.Description)
		})
	}
}

func TestExtractIncome_MissingAmountSentinel(t *testing.T) {
	got := ExtractIncome("Recebi um pagamento ontem")
	assert.True(t, got.Amount.IsZero())
	assert.Equal(t, "um pagamento ontem", got.Description)
}
