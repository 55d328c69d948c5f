package rules

import (
	"testing"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCheckSpendingAlerts_HighRelativeExpense(t *testing.T) {
	txn := &model.Transaction{Amount: dec("300"), Type: model.TransactionTypeExpense}

	alerts := CheckSpendingAlerts(txn, dec("100"), nil, DefaultAlertConfig())

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertHighRelativeExpense, alerts[0].Kind)
	assert.Contains(t, alerts[0].Message, "3x")
}

func TestCheckSpendingAlerts_RelativeRequiresHistory(t *testing.T) {
	txn := &model.Transaction{Amount: dec("300")}

	// No historical average means the relative rule stays silent.
	alerts := CheckSpendingAlerts(txn, decimal.Zero, nil, DefaultAlertConfig())
	assert.Empty(t, alerts)
}

func TestCheckSpendingAlerts_HighAbsoluteExpense(t *testing.T) {
	txn := &model.Transaction{Amount: dec("600")}

	alerts := CheckSpendingAlerts(txn, dec("400"), nil, DefaultAlertConfig())

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertHighAbsoluteExpense, alerts[0].Kind)
}

func TestCheckSpendingAlerts_NearGoalLimit(t *testing.T) {
	goals := []model.Goal{
		{
			Title:         "Limite de delivery",
			Category:      model.GoalCategoryExpenseLimit,
			Status:        model.GoalStatusActive,
			TargetAmount:  dec("1000"),
			CurrentAmount: dec("850"),
		},
		{
			// Savings goals never raise spending alerts.
			Title:         "Viagem",
			Category:      "savings",
			Status:        model.GoalStatusActive,
			TargetAmount:  dec("1000"),
			CurrentAmount: dec("990"),
		},
		{
			// Inactive goals are skipped even when over the limit.
			Title:         "Limite antigo",
			Category:      model.GoalCategoryExpenseLimit,
			Status:        model.GoalStatusCancelled,
			TargetAmount:  dec("100"),
			CurrentAmount: dec("100"),
		},
	}
	txn := &model.Transaction{Amount: dec("10")}

	alerts := CheckSpendingAlerts(txn, dec("20"), goals, DefaultAlertConfig())

	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertNearGoalLimit, alerts[0].Kind)
	assert.Contains(t, alerts[0].Message, "Limite de delivery")
}

func TestCheckSpendingAlerts_Idempotent(t *testing.T) {
	txn := &model.Transaction{Amount: dec("600")}
	goals := []model.Goal{{
		Title:         "Limite",
		Category:      model.GoalCategoryExpenseLimit,
		Status:        model.GoalStatusActive,
		TargetAmount:  dec("100"),
		CurrentAmount: dec("90"),
	}}

	first := CheckSpendingAlerts(txn, dec("100"), goals, DefaultAlertConfig())
	second := CheckSpendingAlerts(txn, dec("100"), goals, DefaultAlertConfig())

	assert.Equal(t, first, second)
}

func TestIsOutlier(t *testing.T) {
	history := []model.Transaction{
		{ID: "1", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("50")},
		{ID: "2", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("55")},
		{ID: "3", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("45")},
		{ID: "4", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("52")},
	}

	outlier := &model.Transaction{ID: "5", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("400")}
	normal := &model.Transaction{ID: "6", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("48")}

	assert.True(t, IsOutlier(outlier, history))
	assert.False(t, IsOutlier(normal, history))
}

func TestIsOutlier_SuppressedBelowThreeSamples(t *testing.T) {
	history := []model.Transaction{
		{ID: "1", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("50")},
		{ID: "2", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("55")},
	}
	txn := &model.Transaction{ID: "3", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("9000")}

	assert.False(t, IsOutlier(txn, history))
}

func TestIsOutlier_IgnoresOtherCategories(t *testing.T) {
	history := []model.Transaction{
		{ID: "1", Type: model.TransactionTypeExpense, Category: CategoryTransport, Amount: dec("50")},
		{ID: "2", Type: model.TransactionTypeExpense, Category: CategoryTransport, Amount: dec("55")},
		{ID: "3", Type: model.TransactionTypeExpense, Category: CategoryTransport, Amount: dec("45")},
	}
	txn := &model.Transaction{ID: "4", Type: model.TransactionTypeExpense, Category: CategoryFood, Amount: dec("9000")}

	// Comparable history is same type AND same category; none here.
	assert.False(t, IsOutlier(txn, history))
}
