package rules

// Fixed FinPlay replies, in Brazilian Portuguese like the rest of the
// user-facing surface.
const (
	MsgWelcome = "Bom dia! Bem-vindo ao FinPlay - Serviços Profissionais! 🌟\n\nComo posso ajudá-lo hoje?\n\n1️⃣  Atendimento Pessoal\n2️⃣  Serviços Disponíveis\n3️⃣  Financeiro\n\n💬 Ou digite sua dúvida diretamente!"

	MsgSupport = "Entendido! Estamos lhe redirecionando à nossa equipe de atendimento. Retornaremos em até 5 minutos! ⏰"

	MsgServices = "Aqui estão nossos serviços profissionais disponíveis. Clique em qualquer um para ver detalhes:"

	MsgOrderConfirmed = "✅ Ótimo! Seu pedido foi registrado e nossa equipe entrará em contato em breve para confirmar o agendamento!"

	MsgBilling = "💰 Equipe Financeira FinPlay.\nComo podemos ajudá-lo?"

	MsgFarewell = "👋 Obrigado por usar o FinPlay! Até logo!"

	MsgSelectSubItem = "Por favor, selecione o tipo de serviço desejado:"
)
