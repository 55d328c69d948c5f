package engine

// Canned replies. Everything user-facing speaks Brazilian Portuguese,
// matching the audience the bot serves.
const (
	replyWelcome = "👋 *Bem-vindo ao InvestBot!*\n\n" +
		"Sou seu assistente financeiro pessoal e vou te ajudar a organizar suas finanças.\n\n" +
		"Para começar, me diga seu *nome completo*:"

	replyInvitation = "👋 Olá! Ainda não te conheço.\n\n" +
		"Para usar o InvestBot, faça seu cadastro. É rápido!\n\n" +
		"Digite *\"Quero me cadastrar\"* para começar."

	replyRegistrationComplete = "🎉 *Cadastro concluído com sucesso!*\n\n" +
		"Agora você pode:\n" +
		"💸 Registrar gastos: _\"Gastei 50 reais no mercado\"_\n" +
		"💰 Registrar receitas: _\"Recebi 1000 reais de salário\"_\n" +
		"💳 Consultar saldo: _\"Qual meu saldo?\"_\n" +
		"📊 Pedir relatórios: _\"Me mostra um resumo\"_\n\n" +
		"Como posso te ajudar hoje?"

	replyApology = "😔 Desculpe, tive um problema ao processar sua mensagem.\n\n" +
		"Tente novamente em alguns instantes."

	replyExpenseAmountMissing = "🤔 Não consegui identificar o valor do gasto.\n\n" +
		"Tente algo como: _\"Gastei 50 reais no supermercado\"_"

	replyIncomeAmountMissing = "🤔 Não consegui identificar o valor da receita.\n\n" +
		"Tente algo como: _\"Recebi 1000 reais de salário\"_"

	replySavingTips = "💡 *Dicas para Economizar*\n\n" +
		"1️⃣ Anote todos os seus gastos, até os pequenos\n" +
		"2️⃣ Defina um limite mensal por categoria\n" +
		"3️⃣ Evite compras por impulso: espere 24h antes de comprar\n" +
		"4️⃣ Compare preços antes de fechar negócio\n" +
		"5️⃣ Guarde pelo menos 10% de tudo que receber\n\n" +
		"Pequenas economias viram grandes resultados! 💪"

	replyInvestingTips = "📈 *Primeiros Passos para Investir*\n\n" +
		"1️⃣ Monte uma reserva de emergência (3 a 6 meses de gastos)\n" +
		"2️⃣ Quite dívidas caras antes de investir\n" +
		"3️⃣ Comece por renda fixa (Tesouro Direto, CDB)\n" +
		"4️⃣ Diversifique aos poucos\n" +
		"5️⃣ Invista todo mês, mesmo que pouco\n\n" +
		"O melhor dia para começar foi ontem. O segundo melhor é hoje! 🚀"

	replyBudgetingTips = "📋 *Montando seu Orçamento*\n\n" +
		"Uma regra simples é a *50/30/20*:\n" +
		"• 50% para necessidades (moradia, alimentação, transporte)\n" +
		"• 30% para desejos (lazer, compras)\n" +
		"• 20% para poupança e investimentos\n\n" +
		"Registre seus gastos por aqui e eu te ajudo a acompanhar! 📊"

	replyHelp = "🤖 *Comandos do InvestBot*\n\n" +
		"💸 _\"Gastei 50 reais no mercado\"_ registra um gasto\n" +
		"💰 _\"Recebi 1000 reais\"_ registra uma receita\n" +
		"💳 _\"Qual meu saldo?\"_ mostra seu saldo\n" +
		"📊 _\"Me mostra um relatório\"_ gera um extrato\n" +
		"🎯 _\"Minhas metas\"_ lista suas metas\n" +
		"📈 _\"Análise dos meus gastos\"_ analisa o mês\n" +
		"🔮 _\"Previsão de gastos\"_ projeta o próximo mês\n" +
		"💡 _\"Dica para economizar\"_ traz sugestões"

	replyGeneralFallback = "🤖 Não entendi muito bem, mas posso te ajudar com suas finanças!\n\n" +
		"Digite *\"ajuda\"* para ver tudo que sei fazer. 😊"
)
