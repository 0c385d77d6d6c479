package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Estados da cobrança PIX. Paga e Expirada são terminais.
const (
	PixNaoGerada = "NaoGerada"
	PixGerada    = "Gerada"
	PixPaga      = "Paga"
	PixExpirada  = "Expirada"
)

// PixTTLSegundos é a validade da cobrança após gerada.
const PixTTLSegundos = 1800

var (
	ErrCobrancaNaoEncontrada = errors.New("cobrança PIX não encontrada")
	ErrTransicaoInvalida     = errors.New("transição de estado inválida para a cobrança")
)

// CobrancaPix acompanha o ciclo NaoGerada → Gerada → {Paga | Expirada}.
// O payload copia-e-cola é um código de demonstração, não uma integração
// real com o arranjo PIX.
type CobrancaPix struct {
	ID               string    `json:"id"`
	SessaoID         string    `json:"sessaoId"`
	Codigo           string    `json:"codigo"`
	Estado           string    `json:"estado"`
	RestanteSegundos int       `json:"restanteSegundos"`
	AtualizadaEm     time.Time `json:"atualizadaEm"`
}

func NovaCobrancaPix(sessaoID string) *CobrancaPix {
	return &CobrancaPix{
		ID:       uuid.NewString(),
		SessaoID: sessaoID,
		Estado:   PixNaoGerada,
	}
}

// Gerar emite o código e inicia a contagem regressiva de 30 minutos.
// Gerar de novo sobre uma cobrança já gerada reinicia a contagem.
func (c *CobrancaPix) Gerar(agora time.Time) error {
	if c.Estado == PixPaga || c.Estado == PixExpirada {
		return ErrTransicaoInvalida
	}
	c.Estado = PixGerada
	c.RestanteSegundos = PixTTLSegundos
	c.Codigo = fmt.Sprintf("00020126580014BR.GOV.BCB.PIX0136%s5204000053039865802BR", c.ID)
	c.AtualizadaEm = agora
	return nil
}

// Tick avança um segundo da contagem; retorna true na transição para
// Expirada. Fora do estado Gerada é um no-op.
func (c *CobrancaPix) Tick() bool {
	if c.Estado != PixGerada {
		return false
	}
	c.RestanteSegundos--
	if c.RestanteSegundos <= 0 {
		c.RestanteSegundos = 0
		c.Estado = PixExpirada
		return true
	}
	return false
}

// Avancar aplica n segundos de relógio de uma vez.
func (c *CobrancaPix) Avancar(segundos int) bool {
	for i := 0; i < segundos; i++ {
		if c.Tick() {
			return true
		}
	}
	return false
}

// Pagar marca a cobrança como paga; só é válido enquanto Gerada.
func (c *CobrancaPix) Pagar() error {
	if c.Estado != PixGerada {
		return ErrTransicaoInvalida
	}
	c.Estado = PixPaga
	return nil
}

/* ============================== Serviço ============================== */

// CobrancaStore persiste cobranças durante sua vida útil.
type CobrancaStore interface {
	Salvar(ctx context.Context, c *CobrancaPix) error
	Buscar(ctx context.Context, id string) (*CobrancaPix, error)
	Remover(ctx context.Context, id string) error
}

// ServicoPix amarra a máquina de estados ao broker de sessões: expirar ou
// cancelar a cobrança sempre limpa a sessão associada.
type ServicoPix struct {
	Sessoes   Broker
	Cobrancas CobrancaStore
}

func NewServicoPix(sessoes Broker, cobrancas CobrancaStore) *ServicoPix {
	return &ServicoPix{Sessoes: sessoes, Cobrancas: cobrancas}
}

// Gerar cria a cobrança para uma sessão existente.
func (s *ServicoPix) Gerar(ctx context.Context, sessaoID string) (*CobrancaPix, error) {
	if _, err := s.Sessoes.Buscar(ctx, sessaoID); err != nil {
		return nil, err
	}
	c := NovaCobrancaPix(sessaoID)
	if err := c.Gerar(time.Now()); err != nil {
		return nil, err
	}
	if err := s.Cobrancas.Salvar(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Status aplica o tempo decorrido desde a última consulta e devolve a
// cobrança atualizada. Na expiração a sessão é removida.
func (s *ServicoPix) Status(ctx context.Context, id string, agora time.Time) (*CobrancaPix, error) {
	c, err := s.Cobrancas.Buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	decorrido := int(agora.Sub(c.AtualizadaEm).Seconds())
	if decorrido > 0 {
		expirou := c.Avancar(decorrido)
		c.AtualizadaEm = agora
		if expirou {
			return c, s.expirar(ctx, c)
		}
		if err := s.Cobrancas.Salvar(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AvancarRelogio avança a contagem da cobrança em passos de um segundo;
// usado pelo fluxo de simulação e pelos testes do ciclo de vida.
func (s *ServicoPix) AvancarRelogio(ctx context.Context, id string, segundos int) (*CobrancaPix, error) {
	c, err := s.Cobrancas.Buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Avancar(segundos) {
		return c, s.expirar(ctx, c)
	}
	return c, s.Cobrancas.Salvar(ctx, c)
}

// Pagar conclui a cobrança: consome a sessão (leitura única), executa
// registrar e só então marca a cobrança como paga. Se registrar falhar,
// a sessão volta ao broker e a cobrança permanece Gerada, permitindo
// nova tentativa dentro do prazo.
func (s *ServicoPix) Pagar(ctx context.Context, id string, registrar func(*Sessao) error) (*CobrancaPix, *Sessao, error) {
	c, err := s.Cobrancas.Buscar(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if c.Estado != PixGerada {
		return nil, nil, ErrTransicaoInvalida
	}
	sessao, err := s.Sessoes.Consumir(ctx, c.SessaoID)
	if err != nil {
		return nil, nil, err
	}
	if registrar != nil {
		if err := registrar(sessao); err != nil {
			if errCriar := s.Sessoes.Criar(ctx, sessao); errCriar != nil {
				return nil, nil, errCriar
			}
			return nil, nil, err
		}
	}
	if err := c.Pagar(); err != nil {
		return nil, nil, err
	}
	if err := s.Cobrancas.Salvar(ctx, c); err != nil {
		return nil, nil, err
	}
	return c, sessao, nil
}

// Cancelar desfaz a cobrança e limpa a sessão, em qualquer estado.
// Cancelamento é sempre explícito, independente do relógio.
func (s *ServicoPix) Cancelar(ctx context.Context, id string) error {
	c, err := s.Cobrancas.Buscar(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Sessoes.Cancelar(ctx, c.SessaoID); err != nil {
		return err
	}
	return s.Cobrancas.Remover(ctx, c.ID)
}

func (s *ServicoPix) expirar(ctx context.Context, c *CobrancaPix) error {
	if err := s.Sessoes.Cancelar(ctx, c.SessaoID); err != nil {
		return err
	}
	return s.Cobrancas.Salvar(ctx, c)
}

/* ============================== Stores ============================== */

type RedisCobrancaStore struct {
	client *redis.Client
}

func NewRedisCobrancaStore(client *redis.Client) *RedisCobrancaStore {
	return &RedisCobrancaStore{client: client}
}

func chaveCobranca(id string) string { return "checkout:pix:" + id }

func (s *RedisCobrancaStore) Salvar(ctx context.Context, c *CobrancaPix) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	// TTL folgado: a expiração de negócio é a da máquina de estados
	return s.client.Set(ctx, chaveCobranca(c.ID), payload, 2*SessaoTTL).Err()
}

func (s *RedisCobrancaStore) Buscar(ctx context.Context, id string) (*CobrancaPix, error) {
	payload, err := s.client.Get(ctx, chaveCobranca(id)).Result()
	if err != nil {
		return nil, ErrCobrancaNaoEncontrada
	}
	var c CobrancaPix
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RedisCobrancaStore) Remover(ctx context.Context, id string) error {
	return s.client.Del(ctx, chaveCobranca(id)).Err()
}

// MemoriaCobrancaStore implementa CobrancaStore em memória para testes.
type MemoriaCobrancaStore struct {
	mu        sync.Mutex
	cobrancas map[string]CobrancaPix
}

func NewMemoriaCobrancaStore() *MemoriaCobrancaStore {
	return &MemoriaCobrancaStore{cobrancas: make(map[string]CobrancaPix)}
}

func (s *MemoriaCobrancaStore) Salvar(ctx context.Context, c *CobrancaPix) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cobrancas[c.ID] = *c
	return nil
}

func (s *MemoriaCobrancaStore) Buscar(ctx context.Context, id string) (*CobrancaPix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cobrancas[id]
	if !ok {
		return nil, ErrCobrancaNaoEncontrada
	}
	return &c, nil
}

func (s *MemoriaCobrancaStore) Remover(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cobrancas, id)
	return nil
}
