package cep

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
)

var reCep = regexp.MustCompile(`^\d{8}$`)

type Handler struct {
	Client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// Buscar trata GET /api/cep/{cep}. O formato é validado antes de sair
// para a rede, erros de formato nunca geram chamada externa.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	cep := mux.Vars(r)["cep"]
	if !reCep.MatchString(cep) {
		http.Error(w, "CEP deve conter 8 dígitos", http.StatusBadRequest)
		return
	}

	endereco, err := h.Client.Buscar(cep)
	if err != nil {
		if errors.Is(err, ErrNaoEncontrado) {
			http.Error(w, "CEP não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "serviço de CEP indisponível", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(endereco)
}
