// Package tokenizacao deriva a alocação de tokens de uma campanha a partir
// da meta de captação e do percentual de equity ofertado. Todas as funções
// são puras; a validação de faixas fica em validacao.go.
package tokenizacao

import "math"

const (
	// PrecoToken é o preço fixo, em reais, de um token de campanha.
	PrecoToken = 200.0
	// PrecoUnitarioReserva é o preço fixo, em reais, de um token de reserva.
	PrecoUnitarioReserva = 5.0
)

// Alocacao é o resultado derivado de uma meta de captação. Não é
// persistida: é sempre recalculada a partir dos termos da campanha.
type Alocacao struct {
	QtdTokens      int     `json:"qtdTokens"`
	PrecoToken     float64 `json:"precoToken"`
	EquityPorToken float64 `json:"equityPorToken"`
	Valuation      float64 `json:"valuation"`
}

// Calcular deriva a alocação de tokens de uma campanha.
// Com meta ou equity zerados os campos derivados ficam em zero, nunca
// há pânico por divisão.
func Calcular(metaCaptacao, equityOfertado float64) Alocacao {
	a := Alocacao{PrecoToken: PrecoToken}
	if metaCaptacao > 0 {
		a.QtdTokens = int(math.Floor(metaCaptacao / PrecoToken))
	}
	if a.QtdTokens > 0 {
		a.EquityPorToken = equityOfertado / float64(a.QtdTokens)
	}
	if equityOfertado > 0 {
		a.Valuation = metaCaptacao / equityOfertado * 100
	}
	return a
}

// CustoReserva calcula o custo de n tokens de reserva.
func CustoReserva(qtd int) float64 {
	return float64(qtd) * PrecoUnitarioReserva
}
