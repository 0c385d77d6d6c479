package dashboard

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var cabecalhoPlanilha = []string{
	"Startup", "Campanha", "Status", "Meta (R$)", "Captado (R$)",
	"% da Meta", "Tokens", "Tokens Vendidos", "Investidores",
}

var cabecalhoInvestidores = []string{
	"Investidor", "E-mail", "Total Investido (R$)", "Tokens", "Aportes",
}

type linhaInvestidor struct {
	Nome     string
	Email    string
	Carteira CarteiraInvestidor
}

// gerarPlanilhaStartups monta o relatório administrativo em XLSX, uma
// linha por campanha.
func gerarPlanilhaStartups(historicos []*HistoricoStartup) (*excelize.File, error) {
	f := excelize.NewFile()
	const aba = "Startups"
	idx, err := f.NewSheet(aba)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, titulo := range cabecalhoPlanilha {
		celula, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(aba, celula, titulo); err != nil {
			return nil, err
		}
	}

	linha := 2
	for _, historico := range historicos {
		for _, c := range historico.Campanhas {
			valores := []interface{}{
				historico.NomeStartup,
				c.CampanhaID,
				c.Status,
				c.MetaCaptacao,
				c.CaptacaoAtual,
				fmt.Sprintf("%.1f%%", c.PercentualMeta),
				c.QtdTokens,
				c.TokensVendidos,
				c.QtdInvestidores,
			}
			for col, v := range valores {
				celula, err := excelize.CoordinatesToCellName(col+1, linha)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(aba, celula, v); err != nil {
					return nil, err
				}
			}
			linha++
		}
	}
	return f, nil
}

func gerarPlanilhaInvestidores(linhas []linhaInvestidor) (*excelize.File, error) {
	f := excelize.NewFile()
	const aba = "Investidores"
	idx, err := f.NewSheet(aba)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, titulo := range cabecalhoInvestidores {
		celula, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(aba, celula, titulo); err != nil {
			return nil, err
		}
	}

	for i, l := range linhas {
		valores := []interface{}{
			l.Nome,
			l.Email,
			l.Carteira.TotalInvestido,
			l.Carteira.TotalTokens,
			len(l.Carteira.Investimentos),
		}
		for col, v := range valores {
			celula, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(aba, celula, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
