package rules

import (
	"fmt"
	"math"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/shopspring/decimal"
)

// AlertConfig tunes the spending alert rules.
type AlertConfig struct {
	AbsoluteThreshold  decimal.Decimal
	RelativeMultiplier decimal.Decimal
	GoalLimitPercent   float64
}

// DefaultAlertConfig returns the production alert thresholds.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		AbsoluteThreshold:  decimal.NewFromInt(500),
		RelativeMultiplier: decimal.NewFromFloat(2.5),
		GoalLimitPercent:   80,
	}
}

// CheckSpendingAlerts evaluates a freshly recorded expense against the
// user's spending history and active goals. The returned alerts are
// advisory only; the transaction is already persisted when this runs.
func CheckSpendingAlerts(txn *model.Transaction, avgExpense decimal.Decimal, goals []model.Goal, cfg AlertConfig) []model.Alert {
	var alerts []model.Alert

	if avgExpense.IsPositive() && txn.Amount.GreaterThan(avgExpense.Mul(cfg.RelativeMultiplier)) {
		times := txn.Amount.Div(avgExpense).Round(0)
		alerts = append(alerts, model.Alert{
			Kind: model.AlertHighRelativeExpense,
			Message: fmt.Sprintf("Este gasto é %sx maior que sua média usual de R$ %s.",
				times.String(), avgExpense.StringFixed(2)),
		})
	}

	if txn.Amount.GreaterThan(cfg.AbsoluteThreshold) {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertHighAbsoluteExpense,
			Message: "Gasto alto detectado! Verifique se está dentro do seu planejamento.",
		})
	}

	for _, goal := range goals {
		if goal.Category != model.GoalCategoryExpenseLimit || goal.Status != model.GoalStatusActive {
			continue
		}
		if progress := goal.Progress(); progress > cfg.GoalLimitPercent {
			alerts = append(alerts, model.Alert{
				Kind: model.AlertNearGoalLimit,
				Message: fmt.Sprintf("Você já gastou %.1f%% da meta %q.",
					progress, goal.Title),
			})
		}
	}

	return alerts
}

// minOutlierSamples is the minimum number of comparable historical points
// required before the statistical check is meaningful.
const minOutlierSamples = 3

// IsOutlier reports whether a transaction deviates from the mean of its
// same-type, same-category history by more than two standard deviations.
// The check is suppressed entirely when fewer than three comparable points
// exist.
func IsOutlier(txn *model.Transaction, history []model.Transaction) bool {
	var samples []float64
	for _, h := range history {
		if h.ID == txn.ID || h.Type != txn.Type || h.Category != txn.Category {
			continue
		}
		v, _ := h.Amount.Float64()
		samples = append(samples, v)
	}

	if len(samples) < minOutlierSamples {
		return false
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))

	var variance float64
	for _, v := range samples {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(samples)))
	if stddev == 0 {
		return false
	}

	amount, _ := txn.Amount.Float64()
	return math.Abs(amount-mean) > 2*stddev
}
