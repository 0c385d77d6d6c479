package validacao

import "testing"

func TestNome(t *testing.T) {
	casos := []struct {
		valor  string
		valido bool
	}{
		{"Ana Souza", true},
		{"José da Conceição", true},
		{"Jo", false},
		{"", false},
		{"Maria123", false},
	}
	for _, c := range casos {
		msg := Nome(c.valor)
		if c.valido && msg != "" {
			t.Errorf("Nome(%q): esperava aceitar, obteve %q", c.valor, msg)
		}
		if !c.valido && msg == "" {
			t.Errorf("Nome(%q): esperava rejeitar", c.valor)
		}
	}
}

func TestEmail(t *testing.T) {
	if msg := Email("investidor@iselftoken.com.br"); msg != "" {
		t.Errorf("e-mail válido rejeitado: %q", msg)
	}
	for _, e := range []string{"", "sem-arroba", "a@b", "a@.com"} {
		if Email(e) == "" {
			t.Errorf("Email(%q): esperava rejeitar", e)
		}
	}
}

func TestSenha(t *testing.T) {
	if msg := Senha("Abcdefghijk1!"); msg != "" {
		t.Errorf("senha válida rejeitada: %q", msg)
	}
	for _, s := range []string{"curta1!A", "abcdefghijkl1!", "ABCDEFGHIJKL1!", "Abcdefghijklm!", "Abcdefghijklm1"} {
		if Senha(s) == "" {
			t.Errorf("Senha(%q): esperava rejeitar", s)
		}
	}
}

func TestForcaSenha(t *testing.T) {
	casos := []struct {
		senha    string
		esperado int
	}{
		{"Abcdefghijk1!", 3},      // 13 chars, quatro classes, sem bônus de comprimento
		{"Abcdefghijklmnop1!", 4}, // 18 chars, quatro classes + bônus
		{"", 0},
		{"abcdefghijkl", 0},
		{"Abcdefghijkl", 1},
	}
	for _, c := range casos {
		if got := ForcaSenha(c.senha); got != c.esperado {
			t.Errorf("ForcaSenha(%q) = %d, esperava %d", c.senha, got, c.esperado)
		}
	}
}

func TestConfirmarSenha(t *testing.T) {
	if ConfirmarSenha("Abcdefghijk1!", "Abcdefghijk1!") != "" {
		t.Error("senhas iguais deveriam conferir")
	}
	if ConfirmarSenha("Abcdefghijk1!", "outra") == "" {
		t.Error("senhas diferentes deveriam ser rejeitadas")
	}
}

func TestMascarasBrasileiras(t *testing.T) {
	if Telefone("(11) 98765-4321") != "" {
		t.Error("celular com máscara deveria ser aceito")
	}
	if Telefone("(11) 3876-5432") != "" {
		t.Error("fixo com máscara deveria ser aceito")
	}
	if Telefone("12345") == "" {
		t.Error("telefone curto deveria ser rejeitado")
	}

	if CPF("123.456.789-09") != "" {
		t.Error("CPF com máscara deveria ser aceito")
	}
	if CPF("123456") == "" {
		t.Error("CPF curto deveria ser rejeitado")
	}

	if CNPJ("12.345.678/0001-95") != "" {
		t.Error("CNPJ com máscara deveria ser aceito")
	}
	if CNPJ("12345678") == "" {
		t.Error("CNPJ incompleto deveria ser rejeitado")
	}

	if CEP("01310-100") != "" {
		t.Error("CEP com máscara deveria ser aceito")
	}
	if CEP("0131") == "" {
		t.Error("CEP incompleto deveria ser rejeitado")
	}
}

func TestTermos(t *testing.T) {
	if Termos(true) != "" {
		t.Error("termos aceitos não deveriam gerar erro")
	}
	if Termos(false) == "" {
		t.Error("termos não aceitos deveriam gerar erro")
	}
}

func TestDistribuicaoRecursos(t *testing.T) {
	base := func(ajuste float64) map[string]float64 {
		return map[string]float64{
			"fundadores":      20,
			"desenvolvimento": 30,
			"comercial":       10,
			"marketing":       15,
			"cloud":           10,
			"juridico":        5,
			"reserva":         10 + ajuste,
		}
	}

	if erros := DistribuicaoRecursos(base(0)); len(erros) != 0 {
		t.Errorf("soma 100 deveria ser aceita: %v", erros)
	}
	// dentro da tolerância de 0,1
	if erros := DistribuicaoRecursos(base(-0.05)); len(erros) != 0 {
		t.Errorf("soma 99,95 deveria ser aceita: %v", erros)
	}
	// fora da tolerância
	if erros := DistribuicaoRecursos(base(-0.2)); erros["distribuicao"] == "" {
		t.Error("soma 99,8 deveria ser rejeitada")
	}

	invalida := base(0)
	invalida["cafezinho"] = 0
	if erros := DistribuicaoRecursos(invalida); erros["cafezinho"] == "" {
		t.Error("categoria desconhecida deveria ser rejeitada")
	}

	negativa := base(5)
	negativa["cloud"] = -5
	if erros := DistribuicaoRecursos(negativa); erros["cloud"] == "" {
		t.Error("percentual negativo deveria ser rejeitado")
	}
}
