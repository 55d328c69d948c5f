// Package report builds the user-facing financial summaries pushed over
// chat: daily and weekly digests, monthly analyses, balance summaries,
// statements, and personalized savings advice.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/service"
	"github.com/shopspring/decimal"
)

// Store is the slice of the data gateway the report generator reads from.
type Store interface {
	GetUserTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	GetTransactionsByPeriod(ctx context.Context, userID string, start, end time.Time) ([]model.Transaction, error)
	GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetMonthlyStats(ctx context.Context, userID string, now time.Time) (*service.MonthlyStats, error)
	GetUserGoals(ctx context.Context, userID string) ([]model.Goal, error)
}

// Generator renders report messages for a user. An empty string result
// with a nil error means "nothing to report, skip this user".
type Generator struct {
	store Store
	now   func() time.Time
}

// NewGenerator creates a report generator backed by the given store.
func NewGenerator(store Store, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{store: store, now: now}
}

// Daily summarizes yesterday's movements. Users with no transactions
// yesterday are skipped.
func (g *Generator) Daily(ctx context.Context, user *model.User) (string, error) {
	now := g.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	end := start.AddDate(0, 0, 1)

	txns, err := g.store.GetTransactionsByPeriod(ctx, user.ID, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to load daily transactions: %w", err)
	}
	if len(txns) == 0 {
		return "", nil
	}

	income, expenses := sumByType(txns)

	var b strings.Builder
	fmt.Fprintf(&b, "🌅 *Bom dia, %s!*\n\n", user.FirstName())
	b.WriteString("📊 *Resumo de ontem:*\n")
	fmt.Fprintf(&b, "📈 Receitas: R$ %s\n", income.StringFixed(2))
	fmt.Fprintf(&b, "📉 Gastos: R$ %s\n", expenses.StringFixed(2))
	fmt.Fprintf(&b, "💾 Saldo do dia: R$ %s\n\n", income.Sub(expenses).StringFixed(2))
	b.WriteString("💡 Continue controlando suas finanças! 💪")

	return b.String(), nil
}

// Weekly summarizes the trailing seven days plus the current balance.
func (g *Generator) Weekly(ctx context.Context, user *model.User) (string, error) {
	now := g.now()
	start := now.AddDate(0, 0, -7)

	txns, err := g.store.GetTransactionsByPeriod(ctx, user.ID, start, now)
	if err != nil {
		return "", fmt.Errorf("failed to load weekly transactions: %w", err)
	}
	if len(txns) == 0 {
		return "", nil
	}

	income, expenses := sumByType(txns)

	balance, err := g.store.GetUserBalance(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load balance: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Resumo Semanal - %s*\n\n", user.FirstName())
	b.WriteString("💰 *Esta semana:*\n")
	fmt.Fprintf(&b, "📈 Total Receitas: R$ %s\n", income.StringFixed(2))
	fmt.Fprintf(&b, "📉 Total Gastos: R$ %s\n", expenses.StringFixed(2))
	fmt.Fprintf(&b, "💾 Resultado: R$ %s\n\n", income.Sub(expenses).StringFixed(2))
	fmt.Fprintf(&b, "💳 *Saldo atual:* R$ %s\n\n", balance.StringFixed(2))
	b.WriteString("🎯 Continue assim! Suas finanças estão sob controle! 📈")

	return b.String(), nil
}

// Monthly produces the full analysis of the previous calendar month:
// totals, savings rate, top expense categories, and a rating.
func (g *Generator) Monthly(ctx context.Context, user *model.User) (string, error) {
	now := g.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	txns, err := g.store.GetTransactionsByPeriod(ctx, user.ID, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to load monthly transactions: %w", err)
	}
	if len(txns) == 0 {
		return "", nil
	}

	income, expenses := sumByType(txns)
	rate := savingsRate(income, expenses)

	var b strings.Builder
	b.WriteString("📊 *Análise Completa do Mês Anterior*\n\n")
	b.WriteString("💰 *Resumo Financeiro:*\n")
	fmt.Fprintf(&b, "📈 Receitas: R$ %s\n", income.StringFixed(2))
	fmt.Fprintf(&b, "📉 Gastos: R$ %s\n", expenses.StringFixed(2))
	fmt.Fprintf(&b, "💾 Saldo: R$ %s\n", income.Sub(expenses).StringFixed(2))
	fmt.Fprintf(&b, "📊 Taxa de Economia: %.1f%%\n\n", rate)

	b.WriteString("🏆 *Top 3 Categorias de Gastos:*\n")
	for i, cat := range topExpenseCategories(txns, 3) {
		fmt.Fprintf(&b, "%d. %s: R$ %s\n", i+1, cat.Name, cat.Total.StringFixed(2))
	}
	b.WriteString("\n")

	switch {
	case rate >= 20:
		b.WriteString("✅ *Parabéns!* Você está economizando bem!")
	case rate >= 10:
		b.WriteString("⚠️ *Atenção!* Tente aumentar sua economia para 20%.")
	default:
		b.WriteString("🚨 *Cuidado!* Sua economia está abaixo do ideal.")
	}

	return b.String(), nil
}

// Balance renders the total balance plus current-month statistics.
func (g *Generator) Balance(ctx context.Context, user *model.User) (string, error) {
	balance, err := g.store.GetUserBalance(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load balance: %w", err)
	}

	stats, err := g.store.GetMonthlyStats(ctx, user.ID, g.now())
	if err != nil {
		return "", fmt.Errorf("failed to load monthly stats: %w", err)
	}

	rate := savingsRate(stats.Income, stats.Expenses)

	var b strings.Builder
	b.WriteString("💰 *Seu Saldo Financeiro*\n\n")
	fmt.Fprintf(&b, "💳 *Saldo Total:* R$ %s\n\n", balance.StringFixed(2))
	b.WriteString("📊 *Este mês:*\n")
	fmt.Fprintf(&b, "📈 Receitas: R$ %s\n", stats.Income.StringFixed(2))
	fmt.Fprintf(&b, "📉 Gastos: R$ %s\n", stats.Expenses.StringFixed(2))
	fmt.Fprintf(&b, "💾 Economia: R$ %s\n", stats.Income.Sub(stats.Expenses).StringFixed(2))
	fmt.Fprintf(&b, "📊 Taxa de economia: %.1f%%", rate)

	return b.String(), nil
}

// Statement renders the current month's statement with the five largest
// transactions.
func (g *Generator) Statement(ctx context.Context, user *model.User) (string, error) {
	now := g.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	txns, err := g.store.GetTransactionsByPeriod(ctx, user.ID, start, end)
	if err != nil {
		return "", fmt.Errorf("failed to load statement transactions: %w", err)
	}
	if len(txns) == 0 {
		return "📊 *Relatório Financeiro*\n\nNenhuma transação encontrada para o período solicitado.\n\n💡 *Dica:* Comece registrando seus gastos e receitas!", nil
	}

	income, expenses := sumByType(txns)

	var b strings.Builder
	b.WriteString("📊 *Relatório Financeiro Detalhado*\n")
	fmt.Fprintf(&b, "📅 *Período:* %s a %s\n\n", start.Format("02/01/2006"), end.Format("02/01/2006"))
	b.WriteString("💰 *Resumo Geral:*\n")
	fmt.Fprintf(&b, "📈 Total Receitas: R$ %s\n", income.StringFixed(2))
	fmt.Fprintf(&b, "📉 Total Gastos: R$ %s\n", expenses.StringFixed(2))
	fmt.Fprintf(&b, "💾 Saldo Período: R$ %s\n\n", income.Sub(expenses).StringFixed(2))

	b.WriteString("🔝 *Maiores Transações:*\n")
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	for i, txn := range sorted {
		icon := "📉"
		if txn.Type == model.TransactionTypeIncome {
			icon = "📈"
		}
		fmt.Fprintf(&b, "%d. %s R$ %s - %s\n", i+1, icon, txn.Amount.StringFixed(2), txn.Description)
	}

	return b.String(), nil
}

// Advice produces personalized savings advice banded by savings rate.
func (g *Generator) Advice(ctx context.Context, user *model.User) (string, error) {
	txns, err := g.store.GetUserTransactions(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load transactions: %w", err)
	}

	income, expenses := sumByType(txns)
	rate := savingsRate(income, expenses)

	var message string
	var tips []string

	switch {
	case rate < 10:
		message = fmt.Sprintf("%s, sua taxa de economia está em %.1f%%, que está abaixo do ideal. Vamos trabalhar juntos para melhorar isso!", user.FirstName(), rate)
		tips = []string{
			"💡 Tente economizar pelo menos 20% da sua renda",
			"🍕 Revise seus gastos com delivery e restaurantes",
			"📊 Crie um orçamento mensal detalhado",
			"🏦 Automatize transferências para poupança",
		}
	case rate < 20:
		message = fmt.Sprintf("Parabéns %s! Você está economizando %.1f%% da renda. Está no caminho certo!", user.FirstName(), rate)
		tips = []string{
			"🎯 Tente chegar aos 20% de economia",
			"👀 Mantenha o controle dos gastos supérfluos",
			"💰 Considere investimentos de baixo risco",
		}
	default:
		message = fmt.Sprintf("Excelente trabalho %s! Sua taxa de economia de %.1f%% está acima da média!", user.FirstName(), rate)
		tips = []string{
			"🏆 Continue com a disciplina atual",
			"📈 Explore opções de investimento",
			"🎯 Considere aumentar suas metas",
		}
	}

	var b strings.Builder
	b.WriteString("🧠 *Conselho Financeiro Personalizado*\n\n")
	b.WriteString(message)
	b.WriteString("\n\n💡 *Dicas Personalizadas:*\n")
	for i, tip := range tips {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
	}

	return b.String(), nil
}

type categoryTotal struct {
	Name  string
	Total decimal.Decimal
}

func topExpenseCategories(txns []model.Transaction, n int) []categoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.Type != model.TransactionTypeExpense {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
	}

	out := make([]categoryTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, categoryTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Name < out[j].Name
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sumByType(txns []model.Transaction) (income, expenses decimal.Decimal) {
	for _, txn := range txns {
		switch txn.Type {
		case model.TransactionTypeIncome:
			income = income.Add(txn.Amount)
		case model.TransactionTypeExpense:
			expenses = expenses.Add(txn.Amount)
		}
	}
	return income, expenses
}

func savingsRate(income, expenses decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	rate, _ := income.Sub(expenses).Div(income).Float64()
	return rate * 100
}
