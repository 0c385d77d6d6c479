package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodigoTTL é a validade do código de verificação em duas etapas.
const CodigoTTL = 5 * time.Minute

// CodigoStore guarda códigos A2F com expiração. A implementação Redis é
// usada em produção; a de memória serve aos testes.
type CodigoStore interface {
	Salvar(ctx context.Context, email, codigo string) error
	Buscar(ctx context.Context, email string) (string, bool)
	Remover(ctx context.Context, email string) error
}

/* ============================== Redis ============================== */

type RedisCodigoStore struct {
	client *redis.Client
}

func NewRedisCodigoStore(client *redis.Client) *RedisCodigoStore {
	return &RedisCodigoStore{client: client}
}

func chaveCodigo(email string) string { return "a2f:" + email }

func (s *RedisCodigoStore) Salvar(ctx context.Context, email, codigo string) error {
	return s.client.Set(ctx, chaveCodigo(email), codigo, CodigoTTL).Err()
}

func (s *RedisCodigoStore) Buscar(ctx context.Context, email string) (string, bool) {
	val, err := s.client.Get(ctx, chaveCodigo(email)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *RedisCodigoStore) Remover(ctx context.Context, email string) error {
	return s.client.Del(ctx, chaveCodigo(email)).Err()
}

/* ============================== Memória ============================== */

type entradaCodigo struct {
	codigo string
	expira time.Time
}

type MemoriaCodigoStore struct {
	mu      sync.Mutex
	codigos map[string]entradaCodigo
}

func NewMemoriaCodigoStore() *MemoriaCodigoStore {
	return &MemoriaCodigoStore{codigos: make(map[string]entradaCodigo)}
}

func (s *MemoriaCodigoStore) Salvar(ctx context.Context, email, codigo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codigos[email] = entradaCodigo{codigo: codigo, expira: time.Now().Add(CodigoTTL)}
	return nil
}

func (s *MemoriaCodigoStore) Buscar(ctx context.Context, email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codigos[email]
	if !ok || time.Now().After(e.expira) {
		delete(s.codigos, email)
		return "", false
	}
	return e.codigo, true
}

func (s *MemoriaCodigoStore) Remover(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codigos, email)
	return nil
}
