package rules

import (
	"testing"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{name: "expense verb", text: "Gastei 50 reais com supermercado", want: model.IntentExpense},
		{name: "expense paguei", text: "Paguei 45,90 de conta", want: model.IntentExpense},
		{name: "income verb", text: "Recebi 1000 reais de salário", want: model.IntentIncome},
		{name: "income ganhei", text: "Ganhei 500 de freelancer", want: model.IntentIncome},
		{name: "balance query", text: "Qual meu saldo?", want: model.IntentBalance},
		{name: "report request", text: "Me manda meu extrato", want: model.IntentReport},
		{name: "advice request", text: "Como economizar melhor?", want: model.IntentAdvice},
		{name: "goal request", text: "Quero criar uma meta de poupança", want: model.IntentGoal},
		{name: "analysis request", text: "Faça uma análise das minhas finanças", want: model.IntentAnalysis},
		{name: "prediction request", text: "Qual a previsão para o próximo mês?", want: model.IntentPrediction},
		{name: "suggestion request", text: "Me recomenda onde cortar custos", want: model.IntentSuggestion},
		{name: "comparison request", text: "Pode comparar janeiro e fevereiro?", want: model.IntentComparison},
		{name: "fallback", text: "bom dia, tudo bem?", want: model.IntentGeneral},
		{name: "empty message", text: "", want: model.IntentGeneral},
		{name: "case insensitive", text: "GASTEI 20 NO MERCADO", want: model.IntentExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMessage(tt.text))
		})
	}
}

// "conta" appears under expense cues, so a balance-sounding message that
// mentions a bill must still classify as expense. Table order is behavior.
func TestClassifyMessage_OrderingMatters(t *testing.T) {
	assert.Equal(t, model.IntentExpense, ClassifyMessage("a conta do meu saldo"))
	// "sugestão" is an advice cue even though a suggestion intent exists.
	assert.Equal(t, model.IntentAdvice, ClassifyMessage("tem alguma sugestão?"))
	// "economia" hits the goal table before any later table could see it.
	assert.Equal(t, model.IntentGoal, ClassifyMessage("quero aumentar minha economia"))
}

func TestClassifyMessage_Deterministic(t *testing.T) {
	inputs := []string{
		"Gastei 50 reais com supermercado",
		"mensagem qualquer sem intenção",
		"saldo conta extrato meta",
	}

	for _, input := range inputs {
		first := ClassifyMessage(input)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ClassifyMessage(input), "input %q", input)
		}
	}
}
