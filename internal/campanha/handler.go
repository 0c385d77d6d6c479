package campanha

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/tokenizacao"
	"github.com/iSelfToken/api-plataforma/internal/validacao"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// donoDaStartup resolve o fundador da startup sem importar o pacote
// startup (a relação pai→filho fica só no model da startup).
func (h *Handler) donoDaStartup(startupID uint) (fundadorID uint, estagio string, ok bool) {
	var row struct {
		FundadorID uint
		Estagio    string
	}
	err := h.Repo.DB.Table("startups").
		Select("fundador_id, estagio").
		Where("id = ? AND deleted_at IS NULL", startupID).
		Scan(&row).Error
	if err != nil || row.FundadorID == 0 {
		return 0, "", false
	}
	return row.FundadorID, row.Estagio, true
}

func validarCampanha(req CampanhaRequest, estagio string, aloc tokenizacao.Alocacao) validacao.Erros {
	erros := validacao.Erros{}
	for campo, msg := range tokenizacao.ValidarTermos(req.MetaCaptacao, req.EquityOfertado, estagio) {
		erros[campo] = msg
	}
	for campo, msg := range tokenizacao.ValidarReserva(req.QtdReserva, aloc.QtdTokens) {
		erros[campo] = msg
	}
	for campo, msg := range validacao.DistribuicaoRecursos(req.DistribuicaoRecursos) {
		erros[campo] = msg
	}
	return erros
}

// Criar trata POST /api/startup/{id}/campanha
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	startupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da startup inválido", http.StatusBadRequest)
		return
	}

	fundadorID, estagio, ok := h.donoDaStartup(uint(startupID))
	if !ok {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && fundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req CampanhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	aloc := tokenizacao.Calcular(req.MetaCaptacao, req.EquityOfertado)
	if erros := validarCampanha(req, estagio, aloc); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	status := StatusAtiva
	if req.Rascunho {
		status = StatusRascunho
	}

	c := Campanha{
		StartupID:            uint(startupID),
		MetaCaptacao:         req.MetaCaptacao,
		EquityOfertado:       req.EquityOfertado,
		QtdTokens:            aloc.QtdTokens,
		PrecoToken:           aloc.PrecoToken,
		EquityPorToken:       aloc.EquityPorToken,
		Valuation:            aloc.Valuation,
		QtdReserva:           req.QtdReserva,
		CustoReserva:         tokenizacao.CustoReserva(req.QtdReserva),
		DistribuicaoRecursos: req.DistribuicaoRecursos,
		Status:               status,
	}

	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "erro ao criar campanha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// Listar trata GET /api/startup/{id}/campanha
// Aceita um query param opcional `status` para filtrar os resultados.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	startupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da startup inválido", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.FindByStartup(uint(startupID))
	if err != nil {
		http.Error(w, "erro ao buscar campanhas", http.StatusInternalServerError)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtradas := make([]Campanha, 0, len(list))
		for _, c := range list {
			if c.Status == status {
				filtradas = append(filtradas, c)
			}
		}
		list = filtradas
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Buscar trata GET /api/campanha/{cid}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	cid, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID da campanha inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(cid))
	if err != nil {
		http.Error(w, "campanha não encontrada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Atualizar trata PUT /api/campanha/{cid}: só rascunhos são editáveis
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	cid, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID da campanha inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(cid))
	if err != nil {
		http.Error(w, "campanha não encontrada", http.StatusNotFound)
		return
	}

	fundadorID, estagio, ok := h.donoDaStartup(c.StartupID)
	if !ok {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && fundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if c.Status != StatusRascunho {
		http.Error(w, "apenas campanhas em rascunho podem ser editadas", http.StatusConflict)
		return
	}

	var req CampanhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	aloc := tokenizacao.Calcular(req.MetaCaptacao, req.EquityOfertado)
	if erros := validarCampanha(req, estagio, aloc); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	c.MetaCaptacao = req.MetaCaptacao
	c.EquityOfertado = req.EquityOfertado
	c.QtdTokens = aloc.QtdTokens
	c.PrecoToken = aloc.PrecoToken
	c.EquityPorToken = aloc.EquityPorToken
	c.Valuation = aloc.Valuation
	c.QtdReserva = req.QtdReserva
	c.CustoReserva = tokenizacao.CustoReserva(req.QtdReserva)
	c.DistribuicaoRecursos = req.DistribuicaoRecursos
	if !req.Rascunho {
		c.Status = StatusAtiva
	}

	if err := h.Repo.Update(c); err != nil {
		http.Error(w, "erro ao atualizar campanha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// AtualizarStatus trata PUT /api/campanha/{cid}/status
// Campanha encerrada não volta a ficar ativa.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	cid, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID da campanha inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	allowed := map[string]bool{
		StatusRascunho:  true,
		StatusAtiva:     true,
		StatusEncerrada: true,
	}
	if !allowed[payload.Status] {
		http.Error(w, "Status inválido. Use 'Rascunho', 'Ativa' ou 'Encerrada'.", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(cid))
	if err != nil {
		http.Error(w, "campanha não encontrada", http.StatusNotFound)
		return
	}

	fundadorID, _, ok := h.donoDaStartup(c.StartupID)
	if !ok {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && fundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if c.Status == StatusEncerrada && payload.Status != StatusEncerrada {
		http.Error(w, "não é permitido reabrir uma campanha encerrada", http.StatusBadRequest)
		return
	}

	c.Status = payload.Status
	if err := h.Repo.Update(c); err != nil {
		http.Error(w, "erro ao atualizar status da campanha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Deletar trata DELETE /api/campanha/{cid}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, _ := auth.UsuarioDoContexto(r)

	cid, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID da campanha inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(cid))
	if err != nil {
		http.Error(w, "campanha não encontrada", http.StatusNotFound)
		return
	}

	fundadorID, _, ok := h.donoDaStartup(c.StartupID)
	if !ok {
		http.Error(w, "startup não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && fundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repo.Delete(c); err != nil {
		http.Error(w, "erro ao deletar campanha", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
