// Package checkout implementa a sessão de compra entregue à janela de
// checkout e o ciclo de vida da cobrança PIX. A sessão segue a disciplina
// escreve-uma-vez/lê-uma-vez: quem inicia a compra cria a sessão, a página
// de checkout a consome, e sucesso, cancelamento ou expiração a removem.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessaoTTL é a vida máxima de uma sessão de checkout.
const SessaoTTL = 30 * time.Minute

var ErrSessaoNaoEncontrada = errors.New("sessão de checkout não encontrada ou expirada")

// Sessao carrega os dados da compra entre a página iniciadora e o
// checkout. Transiente: vive apenas no broker, nunca no banco.
type Sessao struct {
	ID                 string    `json:"id"`
	UsuarioID          uint      `json:"usuarioId"`
	NomeUsuario        string    `json:"nomeUsuario"`
	CampanhaID         uint      `json:"campanhaId"`
	QtdTokens          int       `json:"qtdTokens"`
	ValorTotal         float64   `json:"valorTotal"`
	ValorTotalExibicao string    `json:"valorTotalExibicao"`
	NomeProduto        string    `json:"nomeProduto"`
	TipoProduto        string    `json:"tipoProduto"`
	DescricaoProduto   string    `json:"descricaoProduto"`
	ValidadeMeses      *int      `json:"validadeMeses,omitempty"`
	Obs                string    `json:"obs,omitempty"`
	ServicosAdicionais []string  `json:"servicosAdicionais"`
	CriadaEm           time.Time `json:"criadaEm"`
}

// Broker guarda sessões com expiração. Consumir lê e remove em uma única
// operação, garantindo no máximo um leitor.
type Broker interface {
	Criar(ctx context.Context, s *Sessao) error
	Buscar(ctx context.Context, id string) (*Sessao, error)
	Consumir(ctx context.Context, id string) (*Sessao, error)
	Cancelar(ctx context.Context, id string) error
}

// NovaSessao preenche ID e data de criação.
func NovaSessao() Sessao {
	return Sessao{
		ID:       uuid.NewString(),
		CriadaEm: time.Now(),
	}
}

/* ============================== Redis ============================== */

type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func chaveSessao(id string) string { return "checkout:sessao:" + id }

func (b *RedisBroker) Criar(ctx context.Context, s *Sessao) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, chaveSessao(s.ID), payload, SessaoTTL).Err()
}

func (b *RedisBroker) Buscar(ctx context.Context, id string) (*Sessao, error) {
	payload, err := b.client.Get(ctx, chaveSessao(id)).Result()
	if err != nil {
		return nil, ErrSessaoNaoEncontrada
	}
	var s Sessao
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (b *RedisBroker) Consumir(ctx context.Context, id string) (*Sessao, error) {
	payload, err := b.client.GetDel(ctx, chaveSessao(id)).Result()
	if err != nil {
		return nil, ErrSessaoNaoEncontrada
	}
	var s Sessao
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (b *RedisBroker) Cancelar(ctx context.Context, id string) error {
	return b.client.Del(ctx, chaveSessao(id)).Err()
}

/* ============================== Memória ============================== */

type entradaSessao struct {
	sessao Sessao
	expira time.Time
}

// MemoriaBroker implementa Broker em memória para testes.
type MemoriaBroker struct {
	mu      sync.Mutex
	sessoes map[string]entradaSessao
}

func NewMemoriaBroker() *MemoriaBroker {
	return &MemoriaBroker{sessoes: make(map[string]entradaSessao)}
}

func (b *MemoriaBroker) Criar(ctx context.Context, s *Sessao) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessoes[s.ID] = entradaSessao{sessao: *s, expira: time.Now().Add(SessaoTTL)}
	return nil
}

func (b *MemoriaBroker) Buscar(ctx context.Context, id string) (*Sessao, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.sessoes[id]
	if !ok || time.Now().After(e.expira) {
		delete(b.sessoes, id)
		return nil, ErrSessaoNaoEncontrada
	}
	s := e.sessao
	return &s, nil
}

func (b *MemoriaBroker) Consumir(ctx context.Context, id string) (*Sessao, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.sessoes[id]
	if !ok || time.Now().After(e.expira) {
		delete(b.sessoes, id)
		return nil, ErrSessaoNaoEncontrada
	}
	delete(b.sessoes, id)
	s := e.sessao
	return &s, nil
}

func (b *MemoriaBroker) Cancelar(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessoes, id)
	return nil
}
