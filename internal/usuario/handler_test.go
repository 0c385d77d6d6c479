package usuario

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// repoFake guarda usuários em memória, ignorando o *gorm.DB.
type repoFake struct {
	usuarios map[uint]*Usuario
	proximo  uint
}

func novoRepoFake() *repoFake {
	return &repoFake{usuarios: map[uint]*Usuario{}, proximo: 1}
}

func (r *repoFake) Salvar(_ *gorm.DB, u *Usuario) error {
	if u.ID == 0 {
		u.ID = r.proximo
		r.proximo++
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *repoFake) BuscarPorID(_ *gorm.DB, id uint) (*Usuario, error) {
	if u, ok := r.usuarios[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *repoFake) BuscarPorEmail(_ *gorm.DB, email string) (*Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *repoFake) BuscarPorEmailOuCPF(_ *gorm.DB, valor string) (*Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == valor || u.CPF == valor {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *repoFake) ListarTodos(_ *gorm.DB) ([]Usuario, error) {
	var list []Usuario
	for _, u := range r.usuarios {
		list = append(list, *u)
	}
	return list, nil
}

func (r *repoFake) ListarPorPapel(_ *gorm.DB, papel string) ([]Usuario, error) {
	var list []Usuario
	for _, u := range r.usuarios {
		if u.Papel == papel {
			list = append(list, *u)
		}
	}
	return list, nil
}

func (r *repoFake) Atualizar(_ *gorm.DB, id uint, novosDados *Usuario) error {
	if _, ok := r.usuarios[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	novosDados.ID = id
	r.usuarios[id] = novosDados
	return nil
}

func (r *repoFake) Deletar(_ *gorm.DB, id uint) error {
	if _, ok := r.usuarios[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.usuarios, id)
	return nil
}

func novoHandlerTeste(t *testing.T) (*Handler, *repoFake, *auth.MemoriaCodigoStore) {
	t.Helper()

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(webhook.Close)
	t.Setenv("WEBHOOK_ALERTA_URL", webhook.URL)

	repo := novoRepoFake()
	codigos := auth.NewMemoriaCodigoStore()
	h := &Handler{Repository: repo, Codigos: codigos}
	return h, repo, codigos
}

func cadastroValido() CadastroRequest {
	return CadastroRequest{
		Nome:           "Ana Souza",
		Email:          "ana@example.com",
		Telefone:       "11987654321",
		CPF:            "123.456.789-09",
		Papel:          PapelInvestidor,
		Senha:          "SenhaForte#2024",
		ConfirmarSenha: "SenhaForte#2024",
		TermosAceitos:  true,
	}
}

func TestCadastrar(t *testing.T) {
	h, repo, _ := novoHandlerTeste(t)

	body, _ := json.Marshal(cadastroValido())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/cadastro", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.Cadastrar(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("esperava 201, obteve %d: %s", w.Code, w.Body.String())
	}

	u, err := repo.BuscarPorEmail(nil, "ana@example.com")
	if err != nil {
		t.Fatal("usuário não foi salvo")
	}
	if u.CPF != "12345678909" {
		t.Errorf("CPF deveria ser salvo só com dígitos, obteve %q", u.CPF)
	}
	if u.Senha == "SenhaForte#2024" {
		t.Error("senha não pode ser salva em texto claro")
	}
	if !utils.VerificarSenha(u.Senha, "SenhaForte#2024") {
		t.Error("hash da senha não confere")
	}
}

func TestCadastrarInvalido(t *testing.T) {
	h, _, _ := novoHandlerTeste(t)

	invalido := cadastroValido()
	invalido.Senha = "curta1!"
	invalido.ConfirmarSenha = "outra1!"
	invalido.Papel = "gerente"

	body, _ := json.Marshal(invalido)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/cadastro", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.Cadastrar(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("esperava 422, obteve %d", w.Code)
	}

	var resp struct {
		Erros map[string]string `json:"erros"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	for _, campo := range []string{"senha", "confirmarSenha", "papel"} {
		if resp.Erros[campo] == "" {
			t.Errorf("esperava erro no campo %q, obteve %v", campo, resp.Erros)
		}
	}
}

func TestLoginEVerificacaoA2F(t *testing.T) {
	h, repo, codigos := novoHandlerTeste(t)

	hash, _ := utils.HashSenha("SenhaForte#2024")
	repo.Salvar(nil, &Usuario{Nome: "Ana", Email: "ana@example.com", CPF: "12345678909", Senha: hash})

	// 1. login com senha correta dispara o código, sem emitir token
	body := []byte(`{"login": "ana@example.com", "password": "SenhaForte#2024"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("login: esperava 202, obteve %d: %s", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("token")) {
		t.Fatal("login não pode emitir token antes da verificação")
	}

	codigo, ok := codigos.Buscar(req.Context(), "ana@example.com")
	if !ok || len(codigo) != 6 {
		t.Fatalf("código A2F não foi emitido: %q", codigo)
	}

	// 2. código errado é recusado
	body = []byte(`{"email": "ana@example.com", "codigo": "000000"}`)
	if codigo == "000000" {
		body = []byte(`{"email": "ana@example.com", "codigo": "111111"}`)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/auth/a2f", bytes.NewBuffer(body))
	w = httptest.NewRecorder()
	h.VerificarA2F(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("código errado: esperava 401, obteve %d", w.Code)
	}

	// 3. código correto emite o JWT
	body, _ = json.Marshal(A2FRequest{Email: "ana@example.com", Codigo: codigo})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/a2f", bytes.NewBuffer(body))
	w = httptest.NewRecorder()
	h.VerificarA2F(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("verificação: esperava 200, obteve %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp["token"] == "" {
		t.Fatalf("token ausente na resposta: %s", w.Body.String())
	}

	// 4. código é de uso único
	req = httptest.NewRequest(http.MethodPost, "/api/auth/a2f", bytes.NewBuffer(body))
	w = httptest.NewRecorder()
	h.VerificarA2F(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("reuso do código: esperava 401, obteve %d", w.Code)
	}
}

// As rotas consumidas pelo frontend (POST /api/auth, PUT /api/auth/a2f,
// POST /api/newcode e POST /api/usuarios) chegam aos mesmos handlers que
// seus apelidos /login, /a2f e /cadastro.
func TestRotasDeAutenticacao(t *testing.T) {
	h, repo, codigos := novoHandlerTeste(t)

	hash, _ := utils.HashSenha("SenhaForte#2024")
	repo.Salvar(nil, &Usuario{Email: "ana@example.com", Senha: hash})

	r := mux.NewRouter()
	autenticacao := r.PathPrefix("/api/auth").Subrouter()
	autenticacao.HandleFunc("", h.Login).Methods("POST")
	autenticacao.HandleFunc("/a2f", h.VerificarA2F).Methods("POST", "PUT")
	r.HandleFunc("/api/newcode", h.NovoCodigo).Methods("POST")
	r.HandleFunc("/api/usuarios", h.Cadastrar).Methods("POST")

	// POST /api/auth dispara o código A2F
	body := []byte(`{"login": "ana@example.com", "password": "SenhaForte#2024"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewBuffer(body)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("POST /api/auth: esperava 202, obteve %d: %s", w.Code, w.Body.String())
	}

	codigo, ok := codigos.Buscar(context.Background(), "ana@example.com")
	if !ok {
		t.Fatal("código A2F não foi emitido")
	}

	// PUT /api/auth/a2f troca o código pelo token
	body, _ = json.Marshal(A2FRequest{Email: "ana@example.com", Codigo: codigo})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/auth/a2f", bytes.NewBuffer(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /api/auth/a2f: esperava 200, obteve %d: %s", w.Code, w.Body.String())
	}

	// POST /api/newcode reemite o código
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/newcode", bytes.NewBufferString(`{"email": "ana@example.com"}`)))
	if w.Code != http.StatusAccepted {
		t.Fatalf("POST /api/newcode: esperava 202, obteve %d", w.Code)
	}

	// POST /api/usuarios cadastra um novo usuário
	novo := cadastroValido()
	novo.Email = "bia@example.com"
	body, _ = json.Marshal(novo)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBuffer(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/usuarios: esperava 201, obteve %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginSenhaErrada(t *testing.T) {
	h, repo, codigos := novoHandlerTeste(t)

	hash, _ := utils.HashSenha("SenhaForte#2024")
	repo.Salvar(nil, &Usuario{Email: "ana@example.com", Senha: hash})

	body := []byte(`{"login": "ana@example.com", "password": "errada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401, obteve %d", w.Code)
	}
	if _, ok := codigos.Buscar(req.Context(), "ana@example.com"); ok {
		t.Error("senha errada não pode emitir código A2F")
	}
}

func TestForcaSenha(t *testing.T) {
	h, _, _ := novoHandlerTeste(t)

	casos := []struct {
		senha    string
		esperado int
	}{
		{"", 0},
		{"somenteminusculas", 1},
		{"Senha1", 2},
		{"SenhaForte#2024", 3},
		{"SenhaMuitoForte#2024", 4},
	}

	for _, c := range casos {
		body, _ := json.Marshal(map[string]string{"senha": c.senha})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/senha/forca", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		h.ForcaSenha(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d", w.Code)
		}
		var resp map[string]int
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("resposta inválida: %v", err)
		}
		if resp["forca"] != c.esperado {
			t.Errorf("força de %q = %d, esperava %d", c.senha, resp["forca"], c.esperado)
		}
	}
}

func TestResetarSenha(t *testing.T) {
	recebido := make(chan map[string]string, 1)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		recebido <- payload
	}))
	defer webhook.Close()
	t.Setenv("WEBHOOK_ALERTA_URL", webhook.URL)

	repo := novoRepoFake()
	h := &Handler{Repository: repo, Codigos: auth.NewMemoriaCodigoStore()}

	hash, _ := utils.HashSenha("SenhaForte#2024")
	repo.Salvar(nil, &Usuario{Nome: "Ana", Email: "ana@example.com", Senha: hash})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/admin/usuario/1/resetar-senha", nil), map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	h.ResetarSenha(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("esperava 202, obteve %d: %s", w.Code, w.Body.String())
	}

	u, _ := repo.BuscarPorID(nil, 1)
	if utils.VerificarSenha(u.Senha, "SenhaForte#2024") {
		t.Error("senha antiga deveria ter sido substituída")
	}

	select {
	case payload := <-recebido:
		if payload["evento"] != "senha-temporaria" {
			t.Errorf("evento = %q", payload["evento"])
		}
		if len(payload["senha"]) != 12 {
			t.Errorf("senha temporária com tamanho %d", len(payload["senha"]))
		}
		if !utils.VerificarSenha(u.Senha, payload["senha"]) {
			t.Error("senha enviada não confere com o hash salvo")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notificação de senha temporária não foi enviada")
	}
}

func TestResetarSenhaUsuarioInexistente(t *testing.T) {
	h, _, _ := novoHandlerTeste(t)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/admin/usuario/99/resetar-senha", nil), map[string]string{"id": "99"})
	w := httptest.NewRecorder()
	h.ResetarSenha(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, obteve %d", w.Code)
	}
}

func TestNovoCodigoInvalidaAnterior(t *testing.T) {
	h, repo, codigos := novoHandlerTeste(t)

	hash, _ := utils.HashSenha("SenhaForte#2024")
	repo.Salvar(nil, &Usuario{Email: "ana@example.com", Senha: hash})

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := codigos.Salvar(ctx, "ana@example.com", "123456"); err != nil {
		t.Fatal(err)
	}

	body := []byte(`{"email": "ana@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/a2f/reenviar", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.NovoCodigo(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("esperava 202, obteve %d", w.Code)
	}
	codigo, ok := codigos.Buscar(ctx, "ana@example.com")
	if !ok {
		t.Fatal("novo código não foi salvo")
	}
	if codigo == "123456" {
		t.Error("reemissão deveria substituir o código anterior")
	}
}
