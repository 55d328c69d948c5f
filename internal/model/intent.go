package model

// Intent is the closed-vocabulary classification of an inbound message.
type Intent string

const (
	// IntentExpense records money spent.
	IntentExpense Intent = "expense"
	// IntentIncome records money received.
	IntentIncome Intent = "income"
	// IntentBalance asks for the current balance.
	IntentBalance Intent = "balance"
	// IntentReport asks for a transaction statement.
	IntentReport Intent = "report"
	// IntentAdvice asks for personalized financial advice.
	IntentAdvice Intent = "advice"
	// IntentGoal refers to savings goals and spending limits.
	IntentGoal Intent = "goal"
	// IntentAnalysis asks for spending pattern analysis.
	IntentAnalysis Intent = "analysis"
	// IntentPrediction asks for a future expense projection.
	IntentPrediction Intent = "prediction"
	// IntentSuggestion asks for saving suggestions.
	IntentSuggestion Intent = "suggestion"
	// IntentComparison asks to compare periods.
	IntentComparison Intent = "comparison"
	// IntentGeneral is the fallback for everything else.
	IntentGeneral Intent = "general"
)
