package parcelamento

import (
	"math"
	"testing"
)

// Limites das faixas de parcelamento.
func TestOpcoesLimitesDasFaixas(t *testing.T) {
	casos := []struct {
		total    float64
		esperado int
	}{
		{0, 1},
		{99.99, 1},
		{100.00, 3},
		{499.99, 3},
		{500.00, 10},
		{2999.99, 10},
		{3000.00, 15},
		{1000000, 15},
	}
	for _, c := range casos {
		opcoes := Opcoes(c.total)
		if len(opcoes) != c.esperado {
			t.Errorf("total %v: %d opções, esperava %d", c.total, len(opcoes), c.esperado)
		}
	}
}

func TestOpcoesValores(t *testing.T) {
	opcoes := Opcoes(600)
	if len(opcoes) != 10 {
		t.Fatalf("esperava 10 opções, obteve %d", len(opcoes))
	}
	for i, o := range opcoes {
		if o.Parcelas != i+1 {
			t.Errorf("opção %d: Parcelas = %d", i, o.Parcelas)
		}
		esperado := 600 / float64(i+1)
		if math.Abs(o.Valor-esperado) > 1e-9 {
			t.Errorf("opção %dx: valor %v, esperava %v", o.Parcelas, o.Valor, esperado)
		}
	}
}

func TestOpcoesTotalZero(t *testing.T) {
	opcoes := Opcoes(0)
	if len(opcoes) != 1 || opcoes[0].Parcelas != 1 || opcoes[0].Valor != 0 {
		t.Errorf("total 0 deveria render uma única opção 1x de 0: %+v", opcoes)
	}
}
