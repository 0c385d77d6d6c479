package investimento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/campanha"
	"github.com/iSelfToken/api-plataforma/internal/moeda"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo      *Repository
	Campanhas *campanha.Repository
}

func NewHandler(repo *Repository, campanhas *campanha.Repository) *Handler {
	return &Handler{Repo: repo, Campanhas: campanhas}
}

// ListarMeus trata GET /api/investimento e devolve os aportes do
// usuário logado.
func (h *Handler) ListarMeus(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	list, err := h.Repo.ListByInvestidor(userID)
	if err != nil {
		http.Error(w, "erro ao listar investimentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListarPorStartup trata GET /api/startup/{id}/investimentos. Fundador
// vê os aportes das próprias startups, admin vê de qualquer uma.
func (h *Handler) ListarPorStartup(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	startupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da startup inválido", http.StatusBadRequest)
		return
	}

	if !isAdmin {
		var fundadorID uint
		err := h.Repo.DB.Table("startups").
			Select("fundador_id").
			Where("id = ? AND deleted_at IS NULL", startupID).
			Scan(&fundadorID).Error
		if err != nil || fundadorID == 0 {
			http.Error(w, "startup não encontrada", http.StatusNotFound)
			return
		}
		if fundadorID != userID {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
	}

	list, err := h.Repo.ListByStartup(uint(startupID))
	if err != nil {
		http.Error(w, "erro ao listar investimentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Posicao trata GET /api/campanha/{cid}/posicao e devolve quanto o
// usuário logado detém da campanha e o total já captado.
func (h *Handler) Posicao(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	cid, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID da campanha inválido", http.StatusBadRequest)
		return
	}

	tokens, err := h.Repo.SumTokensByInvestidor(userID, uint(cid))
	if err != nil {
		http.Error(w, "erro ao somar tokens", http.StatusInternalServerError)
		return
	}
	totalCampanha, err := h.Repo.SumConfirmadoByCampanha(uint(cid))
	if err != nil {
		http.Error(w, "erro ao somar captação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campanhaId":           uint(cid),
		"qtdTokens":            tokens,
		"totalCaptado":         totalCampanha,
		"totalCaptadoExibicao": moeda.Format(totalCampanha),
	})
}

// Confirmar trata PUT /api/admin/investimento/{id}/confirmar, usado na
// conciliação manual de pagamentos liquidados fora do fluxo normal.
func (h *Handler) Confirmar(w http.ResponseWriter, r *http.Request) {
	h.mudarStatus(w, r, func(id uint) error {
		return h.Repo.Confirmar(id, time.Now())
	})
}

// Cancelar trata PUT /api/admin/investimento/{id}/cancelar (estorno).
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	h.mudarStatus(w, r, h.Repo.Cancelar)
}

func (h *Handler) mudarStatus(w http.ResponseWriter, r *http.Request, aplicar func(id uint) error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	inv, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "investimento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar investimento", http.StatusInternalServerError)
		return
	}

	if err := aplicar(inv.ID); err != nil {
		http.Error(w, "erro ao atualizar investimento", http.StatusInternalServerError)
		return
	}
	if err := h.Campanhas.SomarCaptacao(nil, inv.CampanhaID); err != nil {
		http.Error(w, "erro ao atualizar captação da campanha", http.StatusInternalServerError)
		return
	}

	atualizado, err := h.Repo.FindByID(inv.ID)
	if err != nil {
		http.Error(w, "erro ao buscar investimento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}
