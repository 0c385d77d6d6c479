package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/notificacao"
	"github.com/iSelfToken/api-plataforma/internal/utils"
	"github.com/iSelfToken/api-plataforma/internal/validacao"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB, repository e o store de códigos A2F
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Codigos    auth.CodigoStore
}

func NewHandler(db *gorm.DB, codigos auth.CodigoStore) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Codigos:    codigos,
	}
}

func validarCadastro(req CadastroRequest) validacao.Erros {
	erros := validacao.Erros{}
	campos := map[string]string{
		"nome":           validacao.Nome(req.Nome),
		"email":          validacao.Email(req.Email),
		"telefone":       validacao.Telefone(req.Telefone),
		"cpf":            validacao.CPF(req.CPF),
		"senha":          validacao.Senha(req.Senha),
		"confirmarSenha": validacao.ConfirmarSenha(req.Senha, req.ConfirmarSenha),
		"termosAceitos":  validacao.Termos(req.TermosAceitos),
	}
	for campo, msg := range campos {
		if msg != "" {
			erros[campo] = msg
		}
	}
	if req.Papel != PapelInvestidor && req.Papel != PapelFundador {
		erros["papel"] = "papel deve ser 'investidor' ou 'fundador'"
	}
	return erros
}

// ForcaSenha devolve a pontuação de 0 a 4 usada pelo medidor de força
// do formulário de cadastro. Não persiste nem registra a senha.
func (h *Handler) ForcaSenha(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"forca": validacao.ForcaSenha(req.Senha)})
}

// Cadastrar cria um novo usuário (livre de autenticação)
func (h *Handler) Cadastrar(w http.ResponseWriter, r *http.Request) {
	var req CadastroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if erros := validarCadastro(req); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:          req.Nome,
		Email:         req.Email,
		Telefone:      req.Telefone,
		CPF:           validacao.SomenteDigitos(req.CPF),
		Papel:         req.Papel,
		Senha:         hash,
		TermosAceitos: req.TermosAceitos,
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// Login confere as credenciais e dispara o código de verificação em duas
// etapas; o JWT só é emitido após VerificarA2F.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmailOuCPF(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	if err := h.emitirCodigo(r, user.Email); err != nil {
		http.Error(w, "erro ao gerar código de verificação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"mensagem": "código de verificação enviado",
		"email":    user.Email,
	})
}

// VerificarA2F valida o código de uso único e emite o JWT
func (h *Handler) VerificarA2F(w http.ResponseWriter, r *http.Request) {
	var req A2FRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	esperado, ok := h.Codigos.Buscar(r.Context(), req.Email)
	if !ok || esperado != req.Codigo {
		http.Error(w, "código inválido ou expirado", http.StatusUnauthorized)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	// código é de uso único
	_ = h.Codigos.Remover(r.Context(), req.Email)

	token, err := auth.GerarToken(user.ID, user.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// NovoCodigo reemite o código A2F, invalidando o anterior
func (h *Handler) NovoCodigo(w http.ResponseWriter, r *http.Request) {
	var req NovoCodigoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	if err := h.emitirCodigo(r, req.Email); err != nil {
		http.Error(w, "erro ao gerar código de verificação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"mensagem": "novo código enviado"})
}

func (h *Handler) emitirCodigo(r *http.Request, email string) error {
	codigo, err := utils.GerarCodigoNumerico(6)
	if err != nil {
		return err
	}
	if err := h.Codigos.Salvar(r.Context(), email, codigo); err != nil {
		return err
	}
	go notificacao.EnviarCodigoA2F(email, codigo)
	return nil
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// ListarUsuarios retorna todos (admin) ou apenas o próprio registro
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	if isAdmin {
		var usuarios []Usuario
		var err error
		if papel := r.URL.Query().Get("papel"); papel != "" {
			usuarios, err = h.Repository.ListarPorPapel(h.DB, papel)
		} else {
			usuarios, err = h.Repository.ListarTodos(h.DB)
		}
		if err != nil {
			http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(usuarios)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode([]Usuario{*u})
}

// AtualizarUsuario altera dados básicos de um usuário existente
func (h *Handler) AtualizarUsuario(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if !isAdmin && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dados Usuario
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, uint(id), &dados); err != nil {
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("usuário atualizado com sucesso"))
}

// ResetarSenha gera uma senha temporária para o usuário e a envia pelo
// canal de notificação. Exposta apenas sob as rotas administrativas.
func (h *Handler) ResetarSenha(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u.Senha = hash
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		http.Error(w, "erro ao salvar senha temporária", http.StatusInternalServerError)
		return
	}

	go notificacao.EnviarSenhaTemporaria(u.Email, senha)

	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("senha temporária enviada"))
}

// DeletarUsuario remove um usuário
func (h *Handler) DeletarUsuario(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if !isAdmin && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("usuário excluído com sucesso"))
}
