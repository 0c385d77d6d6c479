package startup

import (
	"time"

	"github.com/iSelfToken/api-plataforma/internal/tokenizacao"
	"github.com/iSelfToken/api-plataforma/internal/validacao"
)

// O formulário de startup é enviado em seções; cada seção valida de forma
// independente e o cadastro só é aceito com todas as seções válidas.

type SecaoDadosBasicos struct {
	Nome         string `json:"nome"`
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razaoSocial"`
	DataFundacao string `json:"dataFundacao"` // RFC 3339
	Estagio      string `json:"estagio"`
	Setor        string `json:"setor"`
	Site         string `json:"site"`
}

type SecaoEndereco struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Numero     string `json:"numero"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

type SecaoApresentacao struct {
	Descricao     string   `json:"descricao"`
	Logo          string   `json:"logo"`
	VideoPitch    string   `json:"videoPitch"`
	TamanhoEquipe int      `json:"tamanhoEquipe"`
	Midias        []string `json:"midias"`
}

type StartupRequest struct {
	DadosBasicos SecaoDadosBasicos `json:"dadosBasicos"`
	Endereco     SecaoEndereco     `json:"endereco"`
	Apresentacao SecaoApresentacao `json:"apresentacao"`
}

var estagiosValidos = map[string]bool{
	tokenizacao.EstagioIdeacao: true,
	tokenizacao.EstagioTracao:  true,
	tokenizacao.EstagioEscala:  true,
}

func (s SecaoDadosBasicos) Validar() validacao.Erros {
	erros := validacao.Erros{}
	if msg := validacao.Nome(s.Nome); msg != "" {
		erros["nome"] = msg
	}
	if msg := validacao.CNPJ(s.CNPJ); msg != "" {
		erros["cnpj"] = msg
	}
	if !estagiosValidos[s.Estagio] {
		erros["estagio"] = "estágio inválido"
	}
	if msg := validacao.Obrigatorio("setor", s.Setor); msg != "" {
		erros["setor"] = msg
	}
	if s.DataFundacao != "" {
		if _, err := time.Parse(time.RFC3339, s.DataFundacao); err != nil {
			erros["dataFundacao"] = "data de fundação inválida"
		}
	}
	return erros
}

func (s SecaoEndereco) Validar() validacao.Erros {
	erros := validacao.Erros{}
	if msg := validacao.CEP(s.CEP); msg != "" {
		erros["cep"] = msg
	}
	if msg := validacao.Obrigatorio("cidade", s.Cidade); msg != "" {
		erros["cidade"] = msg
	}
	if len(s.UF) != 2 {
		erros["uf"] = "UF deve ter 2 letras"
	}
	return erros
}

func (s SecaoApresentacao) Validar() validacao.Erros {
	erros := validacao.Erros{}
	if msg := validacao.Obrigatorio("descricao", s.Descricao); msg != "" {
		erros["descricao"] = msg
	}
	if s.TamanhoEquipe < 1 {
		erros["tamanhoEquipe"] = "equipe deve ter ao menos 1 pessoa"
	}
	return erros
}

// Validar roda todas as seções sem curto-circuito e devolve a união dos
// erros, prefixados pela seção.
func (r StartupRequest) Validar() validacao.Erros {
	erros := validacao.Erros{}
	for prefixo, secao := range map[string]validacao.Erros{
		"dadosBasicos": r.DadosBasicos.Validar(),
		"endereco":     r.Endereco.Validar(),
		"apresentacao": r.Apresentacao.Validar(),
	} {
		for campo, msg := range secao {
			erros[prefixo+"."+campo] = msg
		}
	}
	return erros
}
