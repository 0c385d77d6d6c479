package startup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/notificacao"
	"github.com/iSelfToken/api-plataforma/internal/validacao"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

func (h *Handler) montarStartup(req StartupRequest, fundadorID uint, destino *Startup) {
	destino.FundadorID = fundadorID
	destino.Nome = req.DadosBasicos.Nome
	destino.CNPJ = validacao.SomenteDigitos(req.DadosBasicos.CNPJ)
	destino.RazaoSocial = req.DadosBasicos.RazaoSocial
	destino.Estagio = req.DadosBasicos.Estagio
	destino.Setor = req.DadosBasicos.Setor
	destino.Site = req.DadosBasicos.Site
	if req.DadosBasicos.DataFundacao != "" {
		if t, err := time.Parse(time.RFC3339, req.DadosBasicos.DataFundacao); err == nil {
			destino.DataFundacao = t
		}
	}

	destino.CEP = validacao.SomenteDigitos(req.Endereco.CEP)
	destino.Logradouro = req.Endereco.Logradouro
	destino.Numero = req.Endereco.Numero
	destino.Bairro = req.Endereco.Bairro
	destino.Cidade = req.Endereco.Cidade
	destino.UF = req.Endereco.UF

	destino.Descricao = req.Apresentacao.Descricao
	destino.Logo = req.Apresentacao.Logo
	destino.VideoPitch = req.Apresentacao.VideoPitch
	destino.TamanhoEquipe = req.Apresentacao.TamanhoEquipe
	destino.Midias = req.Apresentacao.Midias
}

// Criar trata POST /api/startup (fundador autenticado)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var req StartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if erros := req.Validar(); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	cnpj := validacao.SomenteDigitos(req.DadosBasicos.CNPJ)
	if _, err := h.Repository.BuscarPorCNPJ(h.DB, cnpj); err == nil {
		go notificacao.EnviarAlertaCNPJDuplicado(cnpj)
		http.Error(w, "já existe startup cadastrada com este CNPJ", http.StatusConflict)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "erro ao verificar CNPJ", http.StatusInternalServerError)
		return
	}

	var s Startup
	h.montarStartup(req, userID, &s)
	s.Status = StatusEmAnalise

	if err := h.Repository.Salvar(h.DB, &s); err != nil {
		http.Error(w, "erro ao salvar startup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// Listar trata GET /api/startup: admin vê todas, fundador vê as suas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	var (
		startups []Startup
		err      error
	)
	if isAdmin {
		startups, err = h.Repository.ListarTodas(h.DB)
	} else {
		startups, err = h.Repository.ListarPorFundador(h.DB, userID)
	}
	if err != nil {
		http.Error(w, "erro ao listar startups", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(startups)
}

// BuscarPorID trata GET /api/startup/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	s, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Atualizar trata PUT /api/startup/{id} (dono ou admin)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && existente.FundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req StartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if erros := req.Validar(); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	h.montarStartup(req, existente.FundadorID, existente)
	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		http.Error(w, "erro ao atualizar startup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existente)
}

// AtualizarStatus trata PATCH /api/startup/{id}/status (admin)
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	allowed := map[string]bool{
		StatusEmAnalise: true,
		StatusAprovada:  true,
		StatusRecusada:  true,
	}
	if !allowed[payload.Status] {
		http.Error(w, "Status inválido. Use 'Em Análise', 'Aprovada' ou 'Recusada'.", http.StatusBadRequest)
		return
	}

	s, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}

	s.Status = payload.Status
	if err := h.Repository.Salvar(h.DB, s); err != nil {
		http.Error(w, "erro ao atualizar status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Deletar trata DELETE /api/startup/{id} (dono ou admin)
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	s, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && s.FundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir startup", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("startup excluída com sucesso"))
}
