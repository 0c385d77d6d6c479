package perfil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/validacao"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// MeuPerfil trata GET /api/perfil: retorna o perfil do usuário logado,
// criando um registro vazio no primeiro acesso.
func (h *Handler) MeuPerfil(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	p, err := h.Repo.BuscarPorUsuario(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = &Perfil{UsuarioID: userID}
		if err := h.Repo.Salvar(p); err != nil {
			http.Error(w, "erro ao criar perfil", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "erro ao buscar perfil", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// BuscarPorID trata GET /api/perfil/{id} (dono ou admin)
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "perfil não encontrado", http.StatusNotFound)
		return
	}

	if !isAdmin && p.UsuarioID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func validarPerfil(p Perfil) validacao.Erros {
	erros := validacao.Erros{}
	if p.CEP != "" {
		if msg := validacao.CEP(p.CEP); msg != "" {
			erros["cep"] = msg
		}
	}
	if p.UF != "" && len(p.UF) != 2 {
		erros["uf"] = "UF deve ter 2 letras"
	}
	return erros
}

// Atualizar trata PUT /api/perfil/{id} (dono ou admin)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "perfil não encontrado", http.StatusNotFound)
		return
	}
	if !isAdmin && existente.UsuarioID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dados Perfil
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if erros := validarPerfil(dados); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	dados.CEP = validacao.SomenteDigitos(dados.CEP)
	if err := h.Repo.Atualizar(uint(id), &dados); err != nil {
		http.Error(w, "erro ao atualizar perfil", http.StatusInternalServerError)
		return
	}

	atualizado, _ := h.Repo.BuscarPorID(uint(id))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}

// AdicionarDocumento trata POST /api/perfil/{id}/documentos
func (h *Handler) AdicionarDocumento(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "perfil não encontrado", http.StatusNotFound)
		return
	}
	if !isAdmin && p.UsuarioID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var payload struct {
		Tipo string `json:"tipo"`
		URL  string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	tiposValidos := map[string]bool{
		DocContrato: true, DocCartaoCNPJ: true, DocMVP: true, DocIdentidade: true,
	}
	if !tiposValidos[payload.Tipo] {
		http.Error(w, "tipo de documento inválido", http.StatusBadRequest)
		return
	}
	if payload.URL == "" {
		http.Error(w, "URL do documento é obrigatória", http.StatusBadRequest)
		return
	}

	d := Documento{
		PerfilID: uint(id),
		Tipo:     payload.Tipo,
		URL:      payload.URL,
		Status:   StatusPendente,
	}
	if err := h.Repo.AdicionarDocumento(&d); err != nil {
		http.Error(w, "erro ao registrar documento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// AtualizarStatusDocumento trata PUT /api/admin/perfil/documentos/{did}/status
func (h *Handler) AtualizarStatusDocumento(w http.ResponseWriter, r *http.Request) {
	did, err := strconv.Atoi(mux.Vars(r)["did"])
	if err != nil {
		http.Error(w, "ID do documento inválido", http.StatusBadRequest)
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
		StatusPendente: true,
		StatusAprovado: true,
		StatusRecusado: true,
	}
	if !allowed[payload.Status] {
		http.Error(w, "Status inválido. Use 'Pendente', 'Aprovado' ou 'Recusado'.", http.StatusBadRequest)
		return
	}

	if err := h.Repo.AtualizarStatusDocumento(uint(did), payload.Status); err != nil {
		http.Error(w, "erro ao atualizar status do documento", http.StatusInternalServerError)
		return
	}

	d, err := h.Repo.BuscarDocumento(uint(did))
	if err != nil {
		http.Error(w, "documento não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// RemoverDocumento trata DELETE /api/perfil/{id}/documentos/{did}
func (h *Handler) RemoverDocumento(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	did, err := strconv.Atoi(mux.Vars(r)["did"])
	if err != nil {
		http.Error(w, "ID do documento inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "perfil não encontrado", http.StatusNotFound)
		return
	}
	if !isAdmin && p.UsuarioID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repo.RemoverDocumento(uint(did)); err != nil {
		http.Error(w, "erro ao remover documento", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
