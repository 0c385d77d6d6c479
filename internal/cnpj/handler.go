package cnpj

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
)

var reCnpj = regexp.MustCompile(`^\d{14}$`)

type Handler struct {
	Client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// Buscar trata GET /api/cnpj/{cnpj}. Valida o formato localmente antes
// de consultar o cadastro externo.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	cnpj := mux.Vars(r)["cnpj"]
	if !reCnpj.MatchString(cnpj) {
		http.Error(w, "CNPJ deve conter 14 dígitos", http.StatusBadRequest)
		return
	}

	empresa, err := h.Client.Buscar(cnpj)
	if err != nil {
		if errors.Is(err, ErrNaoEncontrado) {
			http.Error(w, "CNPJ não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "serviço de consulta de CNPJ indisponível", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(empresa)
}
