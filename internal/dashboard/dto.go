package dashboard

import (
	"time"

	"github.com/iSelfToken/api-plataforma/internal/campanha"
	"github.com/iSelfToken/api-plataforma/internal/investimento"
	"github.com/iSelfToken/api-plataforma/internal/moeda"
)

// CampanhaResumo é uma linha do histórico de captação de uma startup.
type CampanhaResumo struct {
	CampanhaID         uint      `json:"campanhaId"`
	Status             string    `json:"status"`
	MetaCaptacao       float64   `json:"metaCaptacao"`
	CaptacaoAtual      float64   `json:"captacaoAtual"`
	PercentualMeta     float64   `json:"percentualMeta"`
	PercentualExibicao string    `json:"percentualExibicao"`
	QtdTokens          int       `json:"qtdTokens"`
	TokensVendidos     int       `json:"tokensVendidos"`
	QtdInvestidores    int       `json:"qtdInvestidores"`
	MetaExibicao       string    `json:"metaExibicao"`
	CaptadoExibicao    string    `json:"captadoExibicao"`
	CriadaEm           time.Time `json:"criadaEm"`
}

// HistoricoStartup agrega todas as campanhas de uma startup.
type HistoricoStartup struct {
	StartupID     uint             `json:"startupId"`
	NomeStartup   string           `json:"nomeStartup"`
	TotalCaptado  float64          `json:"totalCaptado"`
	TotalExibicao string           `json:"totalExibicao"`
	Campanhas     []CampanhaResumo `json:"campanhas"`
}

// InvestimentoResumo é uma linha da carteira do investidor.
type InvestimentoResumo struct {
	InvestimentoID uint       `json:"investimentoId"`
	CampanhaID     uint       `json:"campanhaId"`
	QtdTokens      int        `json:"qtdTokens"`
	Valor          float64    `json:"valor"`
	ValorExibicao  string     `json:"valorExibicao"`
	FormaPagamento string     `json:"formaPagamento"`
	Status         string     `json:"status"`
	ConfirmadoEm   *time.Time `json:"confirmadoEm"`
}

// CarteiraInvestidor agrega os investimentos de um usuário.
type CarteiraInvestidor struct {
	InvestidorID   uint                 `json:"investidorId"`
	TotalInvestido float64              `json:"totalInvestido"`
	TotalExibicao  string               `json:"totalExibicao"`
	TotalTokens    int                  `json:"totalTokens"`
	Investimentos  []InvestimentoResumo `json:"investimentos"`
}

func montarResumoCampanha(c campanha.Campanha, investimentos []investimento.Investimento) CampanhaResumo {
	resumo := CampanhaResumo{
		CampanhaID:      c.ID,
		Status:          c.Status,
		MetaCaptacao:    c.MetaCaptacao,
		CaptacaoAtual:   c.CaptacaoAtual,
		QtdTokens:       c.QtdTokens,
		MetaExibicao:    moeda.Format(c.MetaCaptacao),
		CaptadoExibicao: moeda.Format(c.CaptacaoAtual),
		CriadaEm:        c.CreatedAt,
	}
	if c.MetaCaptacao > 0 {
		resumo.PercentualMeta = c.CaptacaoAtual / c.MetaCaptacao * 100
	}

	investidores := make(map[uint]struct{})
	for _, inv := range investimentos {
		if inv.Status != investimento.StatusConfirmado {
			continue
		}
		resumo.TokensVendidos += inv.QtdTokens
		investidores[inv.InvestidorID] = struct{}{}
	}
	resumo.QtdInvestidores = len(investidores)
	resumo.PercentualExibicao = moeda.FormatPercent(resumo.PercentualMeta)
	return resumo
}

func montarCarteira(investidorID uint, investimentos []investimento.Investimento) CarteiraInvestidor {
	carteira := CarteiraInvestidor{
		InvestidorID:  investidorID,
		Investimentos: make([]InvestimentoResumo, 0, len(investimentos)),
	}
	for _, inv := range investimentos {
		carteira.Investimentos = append(carteira.Investimentos, InvestimentoResumo{
			InvestimentoID: inv.ID,
			CampanhaID:     inv.CampanhaID,
			QtdTokens:      inv.QtdTokens,
			Valor:          inv.Valor,
			ValorExibicao:  moeda.Format(inv.Valor),
			FormaPagamento: inv.FormaPagamento,
			Status:         inv.Status,
			ConfirmadoEm:   inv.ConfirmadoEm,
		})
		if inv.Status == investimento.StatusConfirmado {
			carteira.TotalInvestido += inv.Valor
			carteira.TotalTokens += inv.QtdTokens
		}
	}
	carteira.TotalExibicao = moeda.Format(carteira.TotalInvestido)
	return carteira
}
