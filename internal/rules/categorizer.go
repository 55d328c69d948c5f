package rules

import "github.com/investbot-app/investbot/internal/model"

// Income and expense categories form a closed vocabulary. The two tables
// are disjoint and ordered; the first matching keyword wins.
const (
	CategorySalary       = "Salário"
	CategoryFreelance    = "Freelancer"
	CategoryInvestments  = "Investimentos"
	CategorySales        = "Vendas"
	CategoryRentalIncome = "Aluguel Recebido"
	CategoryExtraIncome  = "Renda Extra"
	CategoryFood         = "Alimentação"
	CategoryTransport    = "Transporte"
	CategoryHousing      = "Moradia"
	CategoryHealth       = "Saúde"
	CategoryLeisure      = "Lazer"
	CategoryShopping     = "Compras"
	CategoryEducation    = "Educação"
	CategoryOther        = "Outros"
)

var incomeCategoryTable = []KeywordRule[string]{
	{Result: CategorySalary, Keywords: []string{"salário", "salario"}},
	{Result: CategoryFreelance, Keywords: []string{"freelancer", "freela", "trabalho extra"}},
	{Result: CategoryInvestments, Keywords: []string{"investimento", "dividendo", "juros"}},
	{Result: CategorySales, Keywords: []string{"venda", "vendeu"}},
	{Result: CategoryRentalIncome, Keywords: []string{"aluguel"}},
}

var expenseCategoryTable = []KeywordRule[string]{
	{
		Result: CategoryFood,
		Keywords: []string{
			"supermercado", "mercado", "padaria", "açougue", "comida",
			"alimento", "delivery", "ifood", "restaurante", "lanche",
		},
	},
	{
		Result: CategoryTransport,
		Keywords: []string{
			"uber", "taxi", "combustível", "gasolina", "ônibus", "metrô",
			"transporte", "passagem",
		},
	},
	{
		Result: CategoryHousing,
		Keywords: []string{
			"aluguel", "condomínio", "energia", "água", "internet", "casa",
			"luz", "gás",
		},
	},
	{
		Result: CategoryHealth,
		Keywords: []string{
			"farmácia", "médico", "hospital", "plano", "remédio", "consulta",
		},
	},
	{
		Result: CategoryLeisure,
		Keywords: []string{
			"cinema", "bar", "festa", "lazer", "diversão", "show",
			"viagem", "passeio",
		},
	},
	{
		Result: CategoryShopping,
		Keywords: []string{
			"roupa", "sapato", "shopping", "loja", "compras", "presente",
		},
	},
	{
		Result: CategoryEducation,
		Keywords: []string{
			"curso", "livro", "educação", "escola", "faculdade", "estudo",
		},
	},
}

// Categorize assigns a category to a transaction description. Income and
// expense use disjoint rule tables with distinct fallbacks.
func Categorize(description string, txnType model.TransactionType) string {
	if txnType == model.TransactionTypeIncome {
		return firstMatch(description, incomeCategoryTable, CategoryExtraIncome)
	}
	return firstMatch(description, expenseCategoryTable, CategoryOther)
}
