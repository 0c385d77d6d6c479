package localidade

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestIdDaRequisicao(t *testing.T) {
	// variável de caminho da rota aninhada
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/location/countries/1/states", nil), map[string]string{"paisId": "1"})
	id, presente, err := idDaRequisicao(req, "paisId")
	if err != nil || !presente || id != 1 {
		t.Fatalf("variável de caminho: id=%d presente=%v err=%v", id, presente, err)
	}

	// query string da rota plana
	req = httptest.NewRequest(http.MethodGet, "/location/states?paisId=2", nil)
	id, presente, err = idDaRequisicao(req, "paisId")
	if err != nil || !presente || id != 2 {
		t.Fatalf("query string: id=%d presente=%v err=%v", id, presente, err)
	}

	// ausente em ambos
	req = httptest.NewRequest(http.MethodGet, "/location/states", nil)
	if _, presente, err := idDaRequisicao(req, "paisId"); presente || err != nil {
		t.Fatalf("ausente: presente=%v err=%v", presente, err)
	}

	// valor não numérico
	req = httptest.NewRequest(http.MethodGet, "/location/cities?estadoId=abc", nil)
	if _, _, err := idDaRequisicao(req, "estadoId"); err == nil {
		t.Fatal("id não numérico deveria falhar")
	}
}

func TestListarCidadesSemEstado(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/location/cities", nil)
	w := httptest.NewRecorder()
	h.ListarCidades(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("cidades sem estado deveriam dar 400, obteve %d", w.Code)
	}
}

func TestListarEstadosPaisInvalido(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/location/states?paisId=xx", nil)
	w := httptest.NewRecorder()
	h.ListarEstados(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("país inválido deveria dar 400, obteve %d", w.Code)
	}
}
