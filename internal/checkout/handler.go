package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/campanha"
	"github.com/iSelfToken/api-plataforma/internal/investimento"
	"github.com/iSelfToken/api-plataforma/internal/moeda"
	"github.com/iSelfToken/api-plataforma/internal/parcelamento"
	"github.com/iSelfToken/api-plataforma/internal/validacao"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Sessoes       Broker
	Pix           *ServicoPix
	Investimentos *investimento.Repository
	Campanhas     *campanha.Repository

	registrar func(s *Sessao, forma string, parcelas int) (*investimento.Investimento, error)
}

func NewHandler(sessoes Broker, pix *ServicoPix, inv *investimento.Repository, camp *campanha.Repository) *Handler {
	h := &Handler{
		Sessoes:       sessoes,
		Pix:           pix,
		Investimentos: inv,
		Campanhas:     camp,
	}
	h.registrar = h.registrarInvestimento
	return h
}

type criarSessaoRequest struct {
	CampanhaID         uint     `json:"campanhaId"`
	QtdTokens          int      `json:"qtdTokens"`
	ValorTotal         float64  `json:"valorTotal"`
	NomeProduto        string   `json:"nomeProduto"`
	TipoProduto        string   `json:"tipoProduto"`
	DescricaoProduto   string   `json:"descricaoProduto"`
	ValidadeMeses      *int     `json:"validadeMeses"`
	Obs                string   `json:"obs"`
	ServicosAdicionais []string `json:"servicosAdicionais"`
	NomeUsuario        string   `json:"nomeUsuario"`
}

// CriarSessao trata POST /api/checkout/sessao: a página iniciadora grava
// os dados antes de abrir a janela de checkout.
func (h *Handler) CriarSessao(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := auth.UsuarioDoContexto(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var req criarSessaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.ValorTotal <= 0 {
		http.Error(w, "valor total deve ser positivo", http.StatusBadRequest)
		return
	}
	if req.NomeProduto == "" {
		http.Error(w, "nome do produto é obrigatório", http.StatusBadRequest)
		return
	}

	s := NovaSessao()
	s.UsuarioID = userID
	s.NomeUsuario = req.NomeUsuario
	s.CampanhaID = req.CampanhaID
	s.QtdTokens = req.QtdTokens
	s.ValorTotal = req.ValorTotal
	s.ValorTotalExibicao = moeda.Format(req.ValorTotal)
	s.NomeProduto = req.NomeProduto
	s.TipoProduto = req.TipoProduto
	s.DescricaoProduto = req.DescricaoProduto
	s.ValidadeMeses = req.ValidadeMeses
	s.Obs = req.Obs
	s.ServicosAdicionais = req.ServicosAdicionais

	if err := h.Sessoes.Criar(r.Context(), &s); err != nil {
		http.Error(w, "erro ao criar sessão de checkout", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// BuscarSessao trata GET /api/checkout/sessao/{sid}: leitura da janela
// de checkout; a remoção acontece no desfecho (pagamento, cancelamento ou
// expiração), nunca na leitura.
func (h *Handler) BuscarSessao(w http.ResponseWriter, r *http.Request) {
	sid := mux.Vars(r)["sid"]
	s, err := h.Sessoes.Buscar(r.Context(), sid)
	if err != nil {
		http.Error(w, "sessão não encontrada ou expirada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// CancelarSessao trata DELETE /api/checkout/sessao/{sid}
func (h *Handler) CancelarSessao(w http.ResponseWriter, r *http.Request) {
	sid := mux.Vars(r)["sid"]
	if err := h.Sessoes.Cancelar(r.Context(), sid); err != nil {
		http.Error(w, "erro ao cancelar sessão", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Parcelas trata GET /api/checkout/parcelas?total=1234.56
// Aceita também o formato de exibição BRL ("R$ 1.234,56").
func (h *Handler) Parcelas(w http.ResponseWriter, r *http.Request) {
	bruto := r.URL.Query().Get("total")
	total, err := strconv.ParseFloat(bruto, 64)
	if err != nil {
		total, err = moeda.Parse(bruto)
	}
	if err != nil || total < 0 {
		http.Error(w, "total inválido", http.StatusBadRequest)
		return
	}

	opcoes := parcelamento.Opcoes(total)
	exibicao := make([]map[string]interface{}, 0, len(opcoes))
	for _, o := range opcoes {
		exibicao = append(exibicao, map[string]interface{}{
			"parcelas": o.Parcelas,
			"valor":    o.Valor,
			"rotulo":   strconv.Itoa(o.Parcelas) + "x de " + moeda.Format(o.Valor),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(exibicao)
}

type pagamentoCartaoRequest struct {
	SessaoID     string `json:"sessaoId"`
	NumeroCartao string `json:"numeroCartao"`
	NomeTitular  string `json:"nomeTitular"`
	Validade     string `json:"validade"`
	CVV          string `json:"cvv"`
	Parcelas     int    `json:"parcelas"`
}

func validarCartao(req pagamentoCartaoRequest, total float64) validacao.Erros {
	erros := validacao.Erros{}
	numero := validacao.SomenteDigitos(req.NumeroCartao)
	if len(numero) < 13 || len(numero) > 19 {
		erros["numeroCartao"] = "número do cartão inválido"
	}
	if msg := validacao.Nome(req.NomeTitular); msg != "" {
		erros["nomeTitular"] = msg
	}
	if cvv := validacao.SomenteDigitos(req.CVV); len(cvv) < 3 || len(cvv) > 4 {
		erros["cvv"] = "CVV inválido"
	}
	if req.Parcelas < 1 || req.Parcelas > parcelamento.MaxParcelas(total) {
		erros["parcelas"] = "opção de parcelamento indisponível para este total"
	}
	return erros
}

// PagarCartao trata POST /api/checkout/cartao: valida o cartão, consome a
// sessão e registra o investimento confirmado. Se o registro falhar, a
// sessão volta ao broker para nova tentativa.
func (h *Handler) PagarCartao(w http.ResponseWriter, r *http.Request) {
	var req pagamentoCartaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	s, err := h.Sessoes.Buscar(r.Context(), req.SessaoID)
	if err != nil {
		http.Error(w, "sessão não encontrada ou expirada", http.StatusNotFound)
		return
	}

	if erros := validarCartao(req, s.ValorTotal); len(erros) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"erros": erros})
		return
	}

	if _, err := h.Sessoes.Consumir(r.Context(), req.SessaoID); err != nil {
		http.Error(w, "sessão não encontrada ou expirada", http.StatusNotFound)
		return
	}

	inv, err := h.registrar(s, investimento.PagamentoCartao, req.Parcelas)
	if err != nil {
		// devolve a sessão ao broker para permitir nova tentativa
		_ = h.Sessoes.Criar(r.Context(), s)
		http.Error(w, "erro ao registrar investimento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inv)
}

// GerarPix trata POST /api/checkout/pix
func (h *Handler) GerarPix(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessaoID string `json:"sessaoId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Pix.Gerar(r.Context(), payload.SessaoID)
	if err != nil {
		http.Error(w, "sessão não encontrada ou expirada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// StatusPix trata GET /api/checkout/pix/{pid}: a contagem regressiva é
// aplicada no servidor a cada consulta.
func (h *Handler) StatusPix(w http.ResponseWriter, r *http.Request) {
	pid := mux.Vars(r)["pid"]
	c, err := h.Pix.Status(r.Context(), pid, time.Now())
	if err != nil {
		http.Error(w, "cobrança não encontrada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// ConfirmarPix trata POST /api/checkout/pix/{pid}/confirmar: confirmação
// de demonstração do pagamento. O investimento é registrado antes da
// cobrança ser marcada como paga; se o registro falhar, sessão e cobrança
// permanecem válidas para nova tentativa.
func (h *Handler) ConfirmarPix(w http.ResponseWriter, r *http.Request) {
	pid := mux.Vars(r)["pid"]

	var inv *investimento.Investimento
	c, _, err := h.Pix.Pagar(r.Context(), pid, func(s *Sessao) error {
		var errReg error
		inv, errReg = h.registrar(s, investimento.PagamentoPix, 1)
		return errReg
	})
	if err != nil {
		if errors.Is(err, ErrCobrancaNaoEncontrada) || errors.Is(err, ErrTransicaoInvalida) || errors.Is(err, ErrSessaoNaoEncontrada) {
			http.Error(w, "cobrança não encontrada ou fora do prazo", http.StatusConflict)
			return
		}
		http.Error(w, "erro ao registrar investimento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"cobranca":     c,
		"investimento": inv,
	})
}

// CancelarPix trata DELETE /api/checkout/pix/{pid}: cancelamento
// explícito, limpa cobrança e sessão seja qual for o estado do relógio.
func (h *Handler) CancelarPix(w http.ResponseWriter, r *http.Request) {
	pid := mux.Vars(r)["pid"]
	if err := h.Pix.Cancelar(r.Context(), pid); err != nil {
		http.Error(w, "cobrança não encontrada", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) registrarInvestimento(s *Sessao, forma string, parcelas int) (*investimento.Investimento, error) {
	agora := time.Now()
	inv := &investimento.Investimento{
		InvestidorID:   s.UsuarioID,
		CampanhaID:     s.CampanhaID,
		QtdTokens:      s.QtdTokens,
		Valor:          s.ValorTotal,
		FormaPagamento: forma,
		Parcelas:       parcelas,
		Status:         investimento.StatusConfirmado,
		ConfirmadoEm:   &agora,
	}
	err := h.Investimentos.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Investimentos.WithDB(tx).Create(inv); err != nil {
			return err
		}
		return h.Campanhas.SomarCaptacao(tx, s.CampanhaID)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
