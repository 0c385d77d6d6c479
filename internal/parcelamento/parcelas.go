// Package parcelamento gera as opções de parcelamento sem juros do
// checkout. O plano é apenas informativo: o valor de cada parcela é a
// divisão simples do total, sem ajuste de resto.
package parcelamento

// Opcao é uma opção de parcelamento exibida no checkout.
type Opcao struct {
	Parcelas int     `json:"parcelas"`
	Valor    float64 `json:"valor"`
}

// MaxParcelas retorna o número máximo de parcelas para um total, por
// faixa de preço. As faixas são exclusivas e avaliadas em ordem.
func MaxParcelas(total float64) int {
	switch {
	case total < 100:
		return 1
	case total < 500:
		return 3
	case total < 3000:
		return 10
	default:
		return 15
	}
}

// Opcoes gera a sequência ordenada de opções de 1 até MaxParcelas(total).
// Um total zerado ainda rende a opção única "1x de R$ 0,00"; impedir
// checkout de valor zero é responsabilidade de quem chama.
func Opcoes(total float64) []Opcao {
	max := MaxParcelas(total)
	opcoes := make([]Opcao, 0, max)
	for n := 1; n <= max; n++ {
		opcoes = append(opcoes, Opcao{Parcelas: n, Valor: total / float64(n)})
	}
	return opcoes
}
