package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/rules"
	"github.com/shopspring/decimal"
)

// handleExpense records an expense, reports the new balance, and attaches
// the first spending alert, if any.
func (e *Engine) handleExpense(ctx context.Context, user *model.User, text string) string {
	extraction := rules.ExtractExpense(text)
	if extraction.Amount.IsZero() {
		return replyExpenseAmountMissing
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	category := rules.Categorize(extraction.Description, model.TransactionTypeExpense)
	txn := &model.Transaction{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Type:        model.TransactionTypeExpense,
		Amount:      extraction.Amount,
		Description: extraction.Description,
		Category:    category,
		Date:        e.now(),
	}

	txn, err := e.store.CreateTransaction(callCtx, txn)
	if err != nil {
		common.LogError(err, "Expense insert failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	balance, err := e.store.GetUserBalance(callCtx, user.ID)
	if err != nil {
		common.LogError(err, "Balance query failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	alertSuffix := ""
	if alert := e.firstAlert(callCtx, user, txn); alert != nil {
		alertSuffix = fmt.Sprintf("\n\n⚠️ *Alerta:* %s", alert.Message)
	}

	return fmt.Sprintf("✅ *Gasto registrado com sucesso!*\n\n"+
		"💰 *Valor:* R$ %s\n"+
		"📝 *Descrição:* %s\n"+
		"🏷️ *Categoria:* %s\n"+
		"💳 *Saldo atual:* R$ %s%s",
		txn.Amount.StringFixed(2), txn.Description, txn.Category,
		balance.StringFixed(2), alertSuffix)
}

// firstAlert evaluates the alert rules for a just-recorded expense and
// returns the first hit. Rule failures only cost the alert, never the
// confirmation reply.
func (e *Engine) firstAlert(ctx context.Context, user *model.User, txn *model.Transaction) *model.Alert {
	avg, err := e.store.GetAverageExpense(ctx, user.ID)
	if err != nil {
		common.LogError(err, "Average expense query failed", common.Fields{"user_id": user.ID})
		return nil
	}
	goals, err := e.store.GetUserGoals(ctx, user.ID)
	if err != nil {
		common.LogError(err, "Goals query failed", common.Fields{"user_id": user.ID})
		return nil
	}

	alerts := rules.CheckSpendingAlerts(txn, avg, goals, e.cfg.Alerts)

	if history, histErr := e.store.GetUserTransactions(ctx, user.ID); histErr == nil && rules.IsOutlier(txn, history) {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertStatisticalOutlier,
			Message: "Este gasto foge do seu padrão para a categoria " + txn.Category + ".",
		})
	}

	if len(alerts) == 0 {
		return nil
	}
	return &alerts[0]
}

// handleIncome records an income entry and reports the new balance.
func (e *Engine) handleIncome(ctx context.Context, user *model.User, text string) string {
	extraction := rules.ExtractIncome(text)
	if extraction.Amount.IsZero() {
		return replyIncomeAmountMissing
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	category := rules.Categorize(extraction.Description, model.TransactionTypeIncome)
	txn := &model.Transaction{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Type:        model.TransactionTypeIncome,
		Amount:      extraction.Amount,
		Description: extraction.Description,
		Category:    category,
		Date:        e.now(),
	}

	txn, err := e.store.CreateTransaction(callCtx, txn)
	if err != nil {
		common.LogError(err, "Income insert failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	balance, err := e.store.GetUserBalance(callCtx, user.ID)
	if err != nil {
		common.LogError(err, "Balance query failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	return fmt.Sprintf("✅ *Receita registrada com sucesso!*\n\n"+
		"💰 *Valor:* R$ %s\n"+
		"📝 *Descrição:* %s\n"+
		"🏷️ *Categoria:* %s\n"+
		"💳 *Saldo atual:* R$ %s\n\n"+
		"🎉 *Parabéns pela entrada!* Continue assim! 📈",
		txn.Amount.StringFixed(2), txn.Description, txn.Category, balance.StringFixed(2))
}

func (e *Engine) handleBalance(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	msg, err := e.reports.Balance(callCtx, user)
	if err != nil {
		common.LogError(err, "Balance report failed", common.Fields{"user_id": user.ID})
		return replyApology
	}
	return msg
}

func (e *Engine) handleReport(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	msg, err := e.reports.Statement(callCtx, user)
	if err != nil {
		common.LogError(err, "Statement report failed", common.Fields{"user_id": user.ID})
		return replyApology
	}
	return msg
}

func (e *Engine) handleAdvice(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	msg, err := e.reports.Advice(callCtx, user)
	if err != nil {
		common.LogError(err, "Advice generation failed", common.Fields{"user_id": user.ID})
		return replyApology
	}
	return msg
}

// handleGoals lists the user's active goals with progress. Goal creation
// stays on the web dashboard.
func (e *Engine) handleGoals(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	goals, err := e.store.GetUserGoals(callCtx, user.ID)
	if err != nil {
		common.LogError(err, "Goals query failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	var active []model.Goal
	for _, goal := range goals {
		if goal.Status == model.GoalStatusActive {
			active = append(active, goal)
		}
	}
	if len(active) == 0 {
		return "🎯 *Metas Financeiras*\n\nVocê ainda não tem metas ativas.\n\nCrie suas metas no dashboard e acompanhe o progresso por aqui!"
	}

	var b strings.Builder
	b.WriteString("🎯 *Suas Metas Financeiras*\n\n")
	for _, goal := range active {
		fmt.Fprintf(&b, "*%s*\nProgresso: %.1f%%\nAtual: R$ %s | Meta: R$ %s\n\n",
			goal.Title, goal.Progress(),
			goal.CurrentAmount.StringFixed(2), goal.TargetAmount.StringFixed(2))
	}
	b.WriteString("💪 Continue firme nas suas metas!")
	return b.String()
}

func (e *Engine) handleAnalysis(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	msg, err := e.reports.Monthly(callCtx, user)
	if err != nil {
		common.LogError(err, "Analysis generation failed", common.Fields{"user_id": user.ID})
		return replyApology
	}
	if msg == "" {
		return "📊 Ainda não há transações suficientes no mês anterior para uma análise completa."
	}
	return msg
}

// predictionGrowth is the naive projection factor: next month is assumed
// 5% above the current one.
var predictionGrowth = decimal.NewFromFloat(1.05)

func (e *Engine) handlePrediction(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	stats, err := e.store.GetMonthlyStats(callCtx, user.ID, e.now())
	if err != nil {
		common.LogError(err, "Prediction stats query failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	predicted := stats.Expenses.Mul(predictionGrowth)
	return fmt.Sprintf("🔮 *Previsão de Gastos*\n\n"+
		"📉 Gastos deste mês: R$ %s\n"+
		"📈 Projeção para o próximo mês: R$ %s\n\n"+
		"💡 Projeção simples baseada no ritmo atual de gastos.",
		stats.Expenses.StringFixed(2), predicted.StringFixed(2))
}

func (e *Engine) handleComparison(ctx context.Context, user *model.User) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	now := e.now()
	currentStart := now.AddDate(0, 0, -now.Day()+1)
	previousStart := currentStart.AddDate(0, -1, 0)

	current, err := e.store.GetTransactionsByPeriod(callCtx, user.ID, currentStart, now)
	if err != nil {
		common.LogError(err, "Comparison query failed", common.Fields{"user_id": user.ID})
		return replyApology
	}
	previous, err := e.store.GetTransactionsByPeriod(callCtx, user.ID, previousStart, currentStart)
	if err != nil {
		common.LogError(err, "Comparison query failed", common.Fields{"user_id": user.ID})
		return replyApology
	}

	currentTotal := sumExpenses(current)
	previousTotal := sumExpenses(previous)

	trend := "📊 Seus gastos estão estáveis."
	switch {
	case currentTotal.GreaterThan(previousTotal):
		trend = "📈 Seus gastos subiram em relação ao mês anterior."
	case currentTotal.LessThan(previousTotal):
		trend = "📉 Seus gastos caíram em relação ao mês anterior. Bom trabalho!"
	}

	return fmt.Sprintf("⚖️ *Comparativo de Gastos*\n\n"+
		"Mês anterior: R$ %s\n"+
		"Este mês: R$ %s\n\n%s",
		previousTotal.StringFixed(2), currentTotal.StringFixed(2), trend)
}

func sumExpenses(txns []model.Transaction) decimal.Decimal {
	var total decimal.Decimal
	for _, txn := range txns {
		if txn.Type == model.TransactionTypeExpense {
			total = total.Add(txn.Amount)
		}
	}
	return total
}

// handleGeneral answers common financial questions with fixed guidance
// before falling back to the command list.
func (e *Engine) handleGeneral(_ *model.User, text string) string {
	lowered := strings.ToLower(text)

	switch {
	case strings.Contains(lowered, "como economizar") || strings.Contains(lowered, "economizar dinheiro"):
		return replySavingTips
	case strings.Contains(lowered, "investir") || strings.Contains(lowered, "investimento"):
		return replyInvestingTips
	case strings.Contains(lowered, "orçamento") || strings.Contains(lowered, "planejamento"):
		return replyBudgetingTips
	case strings.Contains(lowered, "ajuda") || strings.Contains(lowered, "help") || strings.Contains(lowered, "comandos"):
		return replyHelp
	}

	return replyGeneralFallback
}
