package checkout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func novaSessaoDeTeste(t *testing.T, broker Broker) *Sessao {
	t.Helper()
	s := NovaSessao()
	s.UsuarioID = 7
	s.CampanhaID = 3
	s.QtdTokens = 10
	s.ValorTotal = 2000
	s.NomeProduto = "Tokens de campanha"
	if err := broker.Criar(context.Background(), &s); err != nil {
		t.Fatalf("erro ao criar sessão: %v", err)
	}
	return &s
}

func TestCobrancaGerada(t *testing.T) {
	c := NovaCobrancaPix("sessao-1")
	if c.Estado != PixNaoGerada {
		t.Fatalf("estado inicial = %q", c.Estado)
	}

	if err := c.Gerar(time.Now()); err != nil {
		t.Fatalf("Gerar: %v", err)
	}
	if c.Estado != PixGerada || c.RestanteSegundos != 1800 {
		t.Fatalf("após Gerar: estado %q, restante %d", c.Estado, c.RestanteSegundos)
	}
	if c.Codigo == "" {
		t.Error("código PIX não foi emitido")
	}

	// regerar reinicia a contagem
	c.Avancar(100)
	if err := c.Gerar(time.Now()); err != nil {
		t.Fatalf("Gerar (segunda vez): %v", err)
	}
	if c.RestanteSegundos != 1800 {
		t.Errorf("regerar deveria reiniciar a contagem, restante %d", c.RestanteSegundos)
	}
}

// 1800 ticks de um segundo levam a cobrança a Expirada e limpam a sessão.
func TestCobrancaExpiraELimpaSessao(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoriaBroker()
	servico := NewServicoPix(broker, NewMemoriaCobrancaStore())

	s := novaSessaoDeTeste(t, broker)
	c, err := servico.Gerar(ctx, s.ID)
	if err != nil {
		t.Fatalf("Gerar: %v", err)
	}

	for i := 0; i < 1799; i++ {
		c, err = servico.AvancarRelogio(ctx, c.ID, 1)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if c.Estado != PixGerada {
			t.Fatalf("tick %d: estado %q antes da hora", i, c.Estado)
		}
	}

	c, err = servico.AvancarRelogio(ctx, c.ID, 1)
	if err != nil {
		t.Fatalf("tick final: %v", err)
	}
	if c.Estado != PixExpirada || c.RestanteSegundos != 0 {
		t.Fatalf("após 1800 ticks: estado %q, restante %d", c.Estado, c.RestanteSegundos)
	}

	if _, err := broker.Buscar(ctx, s.ID); err == nil {
		t.Error("sessão deveria ter sido limpa na expiração")
	}
}

func TestCobrancaExpiradaNaoAceitaPagamento(t *testing.T) {
	c := NovaCobrancaPix("sessao-2")
	_ = c.Gerar(time.Now())
	c.Avancar(1800)

	if err := c.Pagar(); err == nil {
		t.Error("pagar cobrança expirada deveria falhar")
	}
	if err := c.Gerar(time.Now()); err == nil {
		t.Error("regerar cobrança expirada deveria falhar")
	}
}

func TestPagarConsomeSessao(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoriaBroker()
	servico := NewServicoPix(broker, NewMemoriaCobrancaStore())

	s := novaSessaoDeTeste(t, broker)
	c, err := servico.Gerar(ctx, s.ID)
	if err != nil {
		t.Fatalf("Gerar: %v", err)
	}

	pago, sessao, err := servico.Pagar(ctx, c.ID, nil)
	if err != nil {
		t.Fatalf("Pagar: %v", err)
	}
	if pago.Estado != PixPaga {
		t.Errorf("estado após pagar: %q", pago.Estado)
	}
	if sessao.ID != s.ID {
		t.Errorf("sessão consumida %q, esperava %q", sessao.ID, s.ID)
	}

	// sessão é de leitura única
	if _, err := broker.Buscar(ctx, s.ID); err == nil {
		t.Error("sessão deveria ter sido consumida no pagamento")
	}
}

// Uma falha ao registrar o investimento não pode perder a compra: a
// sessão volta ao broker e a cobrança permanece Gerada para nova
// tentativa.
func TestPagarComRegistroFalhoPreservaSessao(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoriaBroker()
	cobrancas := NewMemoriaCobrancaStore()
	servico := NewServicoPix(broker, cobrancas)

	s := novaSessaoDeTeste(t, broker)
	c, err := servico.Gerar(ctx, s.ID)
	if err != nil {
		t.Fatalf("Gerar: %v", err)
	}

	falha := errors.New("banco indisponível")
	if _, _, err := servico.Pagar(ctx, c.ID, func(*Sessao) error { return falha }); !errors.Is(err, falha) {
		t.Fatalf("Pagar deveria propagar o erro de registro, obteve %v", err)
	}

	if _, err := broker.Buscar(ctx, s.ID); err != nil {
		t.Error("sessão deveria ter voltado ao broker após a falha")
	}
	atual, err := cobrancas.Buscar(ctx, c.ID)
	if err != nil {
		t.Fatalf("Buscar cobrança: %v", err)
	}
	if atual.Estado != PixGerada {
		t.Errorf("cobrança deveria seguir Gerada, estado %q", atual.Estado)
	}

	// a nova tentativa, agora com registro bem-sucedido, conclui a compra
	pago, _, err := servico.Pagar(ctx, c.ID, func(*Sessao) error { return nil })
	if err != nil {
		t.Fatalf("segunda tentativa: %v", err)
	}
	if pago.Estado != PixPaga {
		t.Errorf("estado após a segunda tentativa: %q", pago.Estado)
	}
}

func TestCancelamentoExplicitoLimpaTudo(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoriaBroker()
	cobrancas := NewMemoriaCobrancaStore()
	servico := NewServicoPix(broker, cobrancas)

	s := novaSessaoDeTeste(t, broker)
	c, err := servico.Gerar(ctx, s.ID)
	if err != nil {
		t.Fatalf("Gerar: %v", err)
	}

	if err := servico.Cancelar(ctx, c.ID); err != nil {
		t.Fatalf("Cancelar: %v", err)
	}
	if _, err := broker.Buscar(ctx, s.ID); err == nil {
		t.Error("sessão deveria ter sido limpa no cancelamento")
	}
	if _, err := cobrancas.Buscar(ctx, c.ID); err == nil {
		t.Error("cobrança deveria ter sido removida no cancelamento")
	}
}

func TestBrokerConsumirLeituraUnica(t *testing.T) {
	ctx := context.Background()
	broker := NewMemoriaBroker()
	s := novaSessaoDeTeste(t, broker)

	if _, err := broker.Consumir(ctx, s.ID); err != nil {
		t.Fatalf("primeira leitura deveria funcionar: %v", err)
	}
	if _, err := broker.Consumir(ctx, s.ID); err == nil {
		t.Error("segunda leitura deveria falhar")
	}
}
