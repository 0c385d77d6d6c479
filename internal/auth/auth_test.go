package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GerarToken(42, true)
	if err != nil {
		t.Fatalf("gerar token: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("validar token: %v", err)
	}
	if claims.UserID != 42 || !claims.IsAdmin {
		t.Errorf("claims = %+v, esperava userID 42 e admin", claims)
	}
}

func TestTokenAdulterado(t *testing.T) {
	token, err := GerarToken(42, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAndValidate(token + "x"); err == nil {
		t.Error("token adulterado deveria ser rejeitado")
	}
	if _, err := ParseAndValidate("nao-e-um-jwt"); err == nil {
		t.Error("string arbitrária deveria ser rejeitada")
	}
}

func TestMiddlewareAutenticacao(t *testing.T) {
	var gotID uint
	var gotAdmin bool
	protegido := MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotAdmin, _ = UsuarioDoContexto(r)
		w.WriteHeader(http.StatusOK)
	}))

	// sem token
	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	w := httptest.NewRecorder()
	protegido.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("sem token: esperava 401, obteve %d", w.Code)
	}

	// com token válido
	token, err := GerarToken(7, false)
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	protegido.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("com token: esperava 200, obteve %d: %s", w.Code, w.Body.String())
	}
	if gotID != 7 || gotAdmin {
		t.Errorf("contexto = (%d, %v), esperava (7, false)", gotID, gotAdmin)
	}
}

func TestRequireAdmin(t *testing.T) {
	soAdmin := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/usuarios", nil)
	req = req.WithContext(context.WithValue(req.Context(), CtxIsAdmin, false))
	w := httptest.NewRecorder()
	soAdmin.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("não admin: esperava 403, obteve %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/usuarios", nil)
	req = req.WithContext(context.WithValue(req.Context(), CtxIsAdmin, true))
	w = httptest.NewRecorder()
	soAdmin.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: esperava 200, obteve %d", w.Code)
	}
}

func TestMemoriaCodigoStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoriaCodigoStore()

	if err := store.Salvar(ctx, "ana@example.com", "123456"); err != nil {
		t.Fatal(err)
	}
	codigo, ok := store.Buscar(ctx, "ana@example.com")
	if !ok || codigo != "123456" {
		t.Fatalf("Buscar = (%q, %v)", codigo, ok)
	}

	if err := store.Remover(ctx, "ana@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Buscar(ctx, "ana@example.com"); ok {
		t.Error("código removido não pode ser encontrado")
	}
}
