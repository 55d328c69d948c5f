package rules

import "github.com/investbot-app/investbot/internal/model"

// intentTable is the ordered intent classification table. Keyword sets
// overlap (e.g. "conta" lives under expense cues, "sugestão" under advice),
// so the evaluation order is behavior, not style: expense, income, balance,
// report, advice, goal, analysis, prediction, suggestion, comparison.
var intentTable = []KeywordRule[model.Intent]{
	{
		Result: model.IntentExpense,
		Keywords: []string{
			"gastei", "paguei", "comprei", "despesa", "gasto", "saiu",
			"débito", "conta", "fatura",
		},
	},
	{
		Result: model.IntentIncome,
		Keywords: []string{
			"recebi", "ganhei", "salário", "renda", "receita", "entrou",
			"crédito", "pagamento", "freelancer",
		},
	},
	{
		Result: model.IntentBalance,
		Keywords: []string{
			"saldo", "quanto tenho", "balanço", "dinheiro", "total", "patrimônio",
		},
	},
	{
		Result: model.IntentReport,
		Keywords: []string{
			"extrato", "relatório", "resumo", "histórico", "transações", "movimentação",
		},
	},
	{
		Result: model.IntentAdvice,
		Keywords: []string{
			"conselho", "dica", "como economizar", "ajuda financeira",
			"orientação", "sugestão",
		},
	},
	{
		Result: model.IntentGoal,
		Keywords: []string{
			"meta", "objetivo", "planejamento", "poupança", "economia",
		},
	},
	{
		Result:   model.IntentAnalysis,
		Keywords: []string{"análise", "analisar", "padrão", "padrões"},
	},
	{
		Result:   model.IntentPrediction,
		Keywords: []string{"previsão", "prever", "próximo mês", "projeção"},
	},
	{
		Result:   model.IntentSuggestion,
		Keywords: []string{"sugira", "sugerir", "recomendação", "recomenda"},
	},
	{
		Result:   model.IntentComparison,
		Keywords: []string{"comparar", "comparação", "compare", "diferença entre"},
	},
}

// ClassifyMessage maps free text to an intent. Classification is
// deterministic: the same input always yields the same intent, and the
// result is always a member of the closed intent vocabulary.
func ClassifyMessage(text string) model.Intent {
	return firstMatch(text, intentTable, model.IntentGeneral)
}
