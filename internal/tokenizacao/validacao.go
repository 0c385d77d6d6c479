package tokenizacao

import (
	"fmt"

	"github.com/iSelfToken/api-plataforma/internal/moeda"
)

// Estágios de maturidade da startup, cada um com sua faixa de captação.
const (
	EstagioIdeacao    = "Ideação/MVP"
	EstagioTracao     = "Tração/Crescimento"
	EstagioEscala     = "Escala"
	MetaMinima        = 100_000.0
	MetaMaximaGeral   = 15_000_000.0
	metaMaximaIdeacao = 300_000.0
	metaMaximaTracao  = 600_000.0
	metaMaximaEscala  = 1_000_000.0
)

// MetaMaximaPorEstagio retorna o teto de captação do estágio; estágios
// desconhecidos caem na faixa geral.
func MetaMaximaPorEstagio(estagio string) float64 {
	switch estagio {
	case EstagioIdeacao:
		return metaMaximaIdeacao
	case EstagioTracao:
		return metaMaximaTracao
	case EstagioEscala:
		return metaMaximaEscala
	default:
		return MetaMaximaGeral
	}
}

// ValidarTermos valida meta e equity antes da criação da campanha.
// Retorna um mapa campo→mensagem; vazio significa termos aceitos.
func ValidarTermos(metaCaptacao, equityOfertado float64, estagio string) map[string]string {
	erros := map[string]string{}

	maxima := MetaMaximaPorEstagio(estagio)
	if metaCaptacao < MetaMinima || metaCaptacao > maxima {
		erros["metaCaptacao"] = fmt.Sprintf(
			"meta de captação deve estar entre %s e %s para o estágio %q",
			moeda.Format(MetaMinima), moeda.Format(maxima), estagio)
	}
	if equityOfertado <= 0 || equityOfertado > 100 {
		erros["equityOfertado"] = "equity ofertado deve ser maior que 0 e no máximo 100"
	}
	return erros
}

// ValidarReserva valida a quantidade de tokens de reserva contra a
// alocação já derivada: ao menos 1 e no máximo a quantidade de tokens.
func ValidarReserva(qtdReserva, qtdTokens int) map[string]string {
	erros := map[string]string{}
	if qtdReserva < 1 {
		erros["qtdReserva"] = "reserve ao menos 1 token"
	} else if qtdReserva > qtdTokens {
		erros["qtdReserva"] = fmt.Sprintf(
			"quantidade de reserva não pode exceder os %s tokens da campanha",
			moeda.FormatNumber(int64(qtdTokens)))
	}
	return erros
}
