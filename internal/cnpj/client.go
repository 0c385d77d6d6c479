package cnpj

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNaoEncontrado = errors.New("cnpj não encontrado")

// Empresa contém os dados cadastrais usados para pré-preencher o
// formulário de startup.
type Empresa struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	Situacao     string `json:"descricao_situacao_cadastral"`
	Logradouro   string `json:"logradouro"`
	Numero       string `json:"numero"`
	Bairro       string `json:"bairro"`
	Municipio    string `json:"municipio"`
	UF           string `json:"uf"`
	CEP          string `json:"cep"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: "https://brasilapi.com.br",
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Buscar(cnpj string) (*Empresa, error) {
	resp, err := c.HTTP.Get(fmt.Sprintf("%s/api/cnpj/v1/%s", c.BaseURL, cnpj))
	if err != nil {
		return nil, fmt.Errorf("consulta de CNPJ falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNaoEncontrado
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serviço de CNPJ retornou status %d", resp.StatusCode)
	}

	var empresa Empresa
	if err := json.NewDecoder(resp.Body).Decode(&empresa); err != nil {
		return nil, fmt.Errorf("resposta do serviço de CNPJ inválida: %w", err)
	}
	return &empresa, nil
}
