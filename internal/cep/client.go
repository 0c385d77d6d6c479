package cep

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNaoEncontrado = errors.New("cep não encontrado")

// Endereco é o retorno do serviço ViaCEP, já no formato usado pelos
// formulários de cadastro.
type Endereco struct {
	Cep        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"localidade"`
	UF         string `json:"uf"`
	DDD        string `json:"ddd"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: "https://viacep.com.br",
		HTTP:    &http.Client{Timeout: 8 * time.Second},
	}
}

// Buscar consulta o ViaCEP. O serviço responde 200 com {"erro": true}
// quando o CEP tem formato válido mas não existe.
func (c *Client) Buscar(cep string) (*Endereco, error) {
	resp, err := c.HTTP.Get(fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, cep))
	if err != nil {
		return nil, fmt.Errorf("consulta ao ViaCEP falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrNaoEncontrado
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ViaCEP retornou status %d", resp.StatusCode)
	}

	var corpo struct {
		Endereco
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&corpo); err != nil {
		return nil, fmt.Errorf("resposta do ViaCEP inválida: %w", err)
	}
	if corpo.Erro {
		return nil, ErrNaoEncontrado
	}
	return &corpo.Endereco, nil
}
