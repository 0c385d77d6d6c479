package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	idadeMaximaBalde = 1 * time.Hour
	intervaloLimpeza = 30 * time.Minute
)

type balde struct {
	fichas        int
	ultimaRecarga time.Time
}

// Limitador aplica um balde de fichas por IP de origem. Usado nas rotas
// de autenticação para conter força bruta de senha e de código A2F.
type Limitador struct {
	mu           sync.Mutex
	capacidade   int
	recarga      time.Duration
	clientes     map[string]*balde
	pararLimpeza chan struct{}
}

func NovoLimitador(capacidade int, recarga time.Duration) *Limitador {
	l := &Limitador{
		capacidade:   capacidade,
		recarga:      recarga,
		clientes:     make(map[string]*balde),
		pararLimpeza: make(chan struct{}),
	}
	go l.limpezaPeriodica()
	return l
}

func (l *Limitador) limpezaPeriodica() {
	ticker := time.NewTicker(intervaloLimpeza)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.limpar()
		case <-l.pararLimpeza:
			return
		}
	}
}

func (l *Limitador) limpar() {
	l.mu.Lock()
	defer l.mu.Unlock()

	agora := time.Now()
	for ip, b := range l.clientes {
		if agora.Sub(b.ultimaRecarga) > idadeMaximaBalde {
			delete(l.clientes, ip)
		}
	}
}

func (l *Limitador) Parar() {
	close(l.pararLimpeza)
}

func (l *Limitador) Permitir(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	agora := time.Now()
	b, existe := l.clientes[ip]
	if !existe {
		l.clientes[ip] = &balde{fichas: l.capacidade - 1, ultimaRecarga: agora}
		return true
	}

	if agora.Sub(b.ultimaRecarga) >= l.recarga {
		b.fichas = l.capacidade
		b.ultimaRecarga = agora
	}
	if b.fichas <= 0 {
		return false
	}
	b.fichas--
	return true
}

// Middleware devolve um middleware compatível com o roteador que barra
// requisições acima do limite com 429.
func (l *Limitador) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.Permitir(ip) {
			http.Error(w, "muitas requisições, tente novamente em instantes", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
