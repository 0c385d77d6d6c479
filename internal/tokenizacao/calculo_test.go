package tokenizacao

import (
	"math"
	"testing"
)

func TestCalcularQtdTokens(t *testing.T) {
	// floor(meta/200) e os limites do piso
	for _, meta := range []float64{100000, 100199, 500000, 2999999.99, 15000000} {
		a := Calcular(meta, 10)
		esperado := int(math.Floor(meta / PrecoToken))
		if a.QtdTokens != esperado {
			t.Errorf("meta %v: QtdTokens = %d, esperava %d", meta, a.QtdTokens, esperado)
		}
		if float64(a.QtdTokens)*PrecoToken > meta {
			t.Errorf("meta %v: qtd*preco %v excede a meta", meta, float64(a.QtdTokens)*PrecoToken)
		}
		if meta >= float64(a.QtdTokens+1)*PrecoToken {
			t.Errorf("meta %v: piso errado, caberia mais um token", meta)
		}
	}
}

func TestCalcularValuation(t *testing.T) {
	casos := []struct {
		meta, equity float64
	}{
		{100000, 5},
		{500000, 10},
		{15000000, 100},
		{250000, 7.5},
	}
	for _, c := range casos {
		a := Calcular(c.meta, c.equity)
		esperado := c.meta / c.equity * 100
		if math.Abs(a.Valuation-esperado) > 1e-9 {
			t.Errorf("valuation(%v, %v) = %v, esperava %v", c.meta, c.equity, a.Valuation, esperado)
		}
		// ida e volta: valuation * equity / 100 reconstrói a meta
		if math.Abs(a.Valuation*c.equity/100-c.meta) > 1e-6 {
			t.Errorf("meta reconstruída diverge para (%v, %v)", c.meta, c.equity)
		}
	}
}

func TestCalcularCasosDegenerados(t *testing.T) {
	a := Calcular(0, 0)
	if a.QtdTokens != 0 || a.EquityPorToken != 0 || a.Valuation != 0 {
		t.Errorf("entrada zerada deveria derivar tudo em zero: %+v", a)
	}

	// meta abaixo do preço do token: zero tokens, equity por token indefinido vira 0
	a = Calcular(150, 10)
	if a.QtdTokens != 0 || a.EquityPorToken != 0 {
		t.Errorf("meta menor que o preço do token: %+v", a)
	}
}

func TestCustoReserva(t *testing.T) {
	if got := CustoReserva(100); got != 500 {
		t.Errorf("CustoReserva(100) = %v", got)
	}
}

func TestValidarTermosFaixas(t *testing.T) {
	casos := []struct {
		meta    float64
		estagio string
		valido  bool
	}{
		{100000, EstagioIdeacao, true},
		{300000, EstagioIdeacao, true},
		{300001, EstagioIdeacao, false},
		{600000, EstagioTracao, true},
		{600001, EstagioTracao, false},
		{1000000, EstagioEscala, true},
		{1000001, EstagioEscala, false},
		{15000000, "", true},
		{15000001, "", false},
		{99999, EstagioEscala, false},
	}
	for _, c := range casos {
		erros := ValidarTermos(c.meta, 10, c.estagio)
		if c.valido && len(erros) != 0 {
			t.Errorf("meta %v estágio %q: esperava aceito, erros %v", c.meta, c.estagio, erros)
		}
		if !c.valido && erros["metaCaptacao"] == "" {
			t.Errorf("meta %v estágio %q: esperava rejeição", c.meta, c.estagio)
		}
	}
}

func TestValidarTermosEquity(t *testing.T) {
	if erros := ValidarTermos(200000, 0, ""); erros["equityOfertado"] == "" {
		t.Error("equity 0 deveria ser rejeitado")
	}
	if erros := ValidarTermos(200000, 100.01, ""); erros["equityOfertado"] == "" {
		t.Error("equity > 100 deveria ser rejeitado")
	}
	if erros := ValidarTermos(200000, 100, ""); len(erros) != 0 {
		t.Errorf("equity 100 deveria ser aceito: %v", erros)
	}
}

func TestValidarReserva(t *testing.T) {
	a := Calcular(500000, 10)
	if a.QtdTokens != 2500 {
		t.Fatalf("QtdTokens = %d, esperava 2500", a.QtdTokens)
	}

	if erros := ValidarReserva(2600, a.QtdTokens); erros["qtdReserva"] == "" {
		t.Error("2600 reservas para 2500 tokens deveria ser rejeitado")
	}
	if erros := ValidarReserva(2500, a.QtdTokens); len(erros) != 0 {
		t.Errorf("2500 reservas deveria ser aceito: %v", erros)
	}
	if erros := ValidarReserva(0, a.QtdTokens); erros["qtdReserva"] == "" {
		t.Error("0 reservas deveria ser rejeitado")
	}
}
