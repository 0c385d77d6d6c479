package localidade

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) ListarPaises(w http.ResponseWriter, r *http.Request) {
	paises, err := h.Repo.ListarPaises()
	if err != nil {
		http.Error(w, "erro ao listar países", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(paises)
}

// idDaRequisicao resolve um id numérico vindo da rota aninhada (variável
// de caminho) ou da rota plana (query string).
func idDaRequisicao(r *http.Request, nome string) (uint, bool, error) {
	bruto, ok := mux.Vars(r)[nome]
	if !ok {
		bruto = r.URL.Query().Get(nome)
	}
	if bruto == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(bruto, 10, 64)
	if err != nil {
		return 0, true, err
	}
	return uint(id), true, nil
}

// ListarEstados atende tanto /location/countries/{paisId}/states quanto
// /location/states?paisId=. Sem filtro de país, devolve todos os estados.
func (h *Handler) ListarEstados(w http.ResponseWriter, r *http.Request) {
	paisID, _, err := idDaRequisicao(r, "paisId")
	if err != nil {
		http.Error(w, "id de país inválido", http.StatusBadRequest)
		return
	}
	estados, err := h.Repo.ListarEstados(paisID)
	if err != nil {
		http.Error(w, "erro ao listar estados", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(estados)
}

// ListarCidades atende tanto /location/states/{estadoId}/cities quanto
// /location/cities?estadoId=. O estado é obrigatório.
func (h *Handler) ListarCidades(w http.ResponseWriter, r *http.Request) {
	estadoID, presente, err := idDaRequisicao(r, "estadoId")
	if err != nil || !presente {
		http.Error(w, "id de estado inválido", http.StatusBadRequest)
		return
	}
	cidades, err := h.Repo.ListarCidades(estadoID)
	if err != nil {
		http.Error(w, "erro ao listar cidades", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cidades)
}
