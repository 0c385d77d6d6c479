package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/campanha"
	"github.com/iSelfToken/api-plataforma/internal/investimento"
	"github.com/iSelfToken/api-plataforma/internal/moeda"
	"github.com/iSelfToken/api-plataforma/internal/startup"
	"github.com/iSelfToken/api-plataforma/internal/usuario"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB            *gorm.DB
	Startups      startup.Repository
	Campanhas     *campanha.Repository
	Investimentos *investimento.Repository
	Usuarios      usuario.Repository
}

func NewHandler(db *gorm.DB, startups startup.Repository, usuarios usuario.Repository, campanhas *campanha.Repository, investimentos *investimento.Repository) *Handler {
	return &Handler{
		DB:            db,
		Startups:      startups,
		Campanhas:     campanhas,
		Investimentos: investimentos,
		Usuarios:      usuarios,
	}
}

// HistoricoStartup trata GET /api/startup/dashboard/{id}/historico.
// Fundador vê só as próprias startups, admin vê qualquer uma.
func (h *Handler) HistoricoStartup(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	startupID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}

	s, err := h.Startups.BuscarPorID(h.DB, uint(startupID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "startup não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar startup", http.StatusInternalServerError)
		return
	}
	if !isAdmin && s.FundadorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	historico, err := h.montarHistorico(s)
	if err != nil {
		http.Error(w, "erro ao montar histórico", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(historico)
}

func (h *Handler) montarHistorico(s *startup.Startup) (*HistoricoStartup, error) {
	campanhas, err := h.Campanhas.FindByStartup(s.ID)
	if err != nil {
		return nil, err
	}

	historico := &HistoricoStartup{
		StartupID:   s.ID,
		NomeStartup: s.Nome,
		Campanhas:   make([]CampanhaResumo, 0, len(campanhas)),
	}
	for _, c := range campanhas {
		invs, err := h.Investimentos.ListByCampanha(c.ID)
		if err != nil {
			return nil, err
		}
		resumo := montarResumoCampanha(c, invs)
		historico.TotalCaptado += resumo.CaptacaoAtual
		historico.Campanhas = append(historico.Campanhas, resumo)
	}
	historico.TotalExibicao = moeda.Format(historico.TotalCaptado)
	return historico, nil
}

// CarteiraInvestidor trata GET /api/startup/dashboard/investidor/{id}.
// Cada investidor só enxerga a própria carteira.
func (h *Handler) CarteiraInvestidor(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	investidorID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	if !isAdmin && uint(investidorID) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	invs, err := h.Investimentos.ListByInvestidor(uint(investidorID))
	if err != nil {
		http.Error(w, "erro ao listar investimentos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(montarCarteira(uint(investidorID), invs))
}

// ExportarStartups trata GET /api/admin/dashboard/startups/exportar e
// devolve uma planilha XLSX com uma linha por campanha.
func (h *Handler) ExportarStartups(w http.ResponseWriter, r *http.Request) {
	startups, err := h.Startups.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar startups", http.StatusInternalServerError)
		return
	}

	historicos := make([]*HistoricoStartup, 0, len(startups))
	for i := range startups {
		historico, err := h.montarHistorico(&startups[i])
		if err != nil {
			http.Error(w, "erro ao montar histórico", http.StatusInternalServerError)
			return
		}
		historicos = append(historicos, historico)
	}

	planilha, err := gerarPlanilhaStartups(historicos)
	if err != nil {
		http.Error(w, "erro ao gerar planilha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="startups.xlsx"`)
	if err := planilha.Write(w); err != nil {
		http.Error(w, "erro ao enviar planilha", http.StatusInternalServerError)
	}
}

// ExportarInvestidores trata GET /api/admin/dashboard/investidores/exportar.
func (h *Handler) ExportarInvestidores(w http.ResponseWriter, r *http.Request) {
	investidores, err := h.Usuarios.ListarPorPapel(h.DB, usuario.PapelInvestidor)
	if err != nil {
		http.Error(w, "erro ao listar investidores", http.StatusInternalServerError)
		return
	}

	carteiras := make([]linhaInvestidor, 0, len(investidores))
	for _, u := range investidores {
		invs, err := h.Investimentos.ListByInvestidor(u.ID)
		if err != nil {
			http.Error(w, "erro ao listar investimentos", http.StatusInternalServerError)
			return
		}
		carteiras = append(carteiras, linhaInvestidor{
			Nome:     u.Nome,
			Email:    u.Email,
			Carteira: montarCarteira(u.ID, invs),
		})
	}

	planilha, err := gerarPlanilhaInvestidores(carteiras)
	if err != nil {
		http.Error(w, "erro ao gerar planilha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="investidores.xlsx"`)
	if err := planilha.Write(w); err != nil {
		http.Error(w, "erro ao enviar planilha", http.StatusInternalServerError)
	}
}
