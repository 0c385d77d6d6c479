package validacao

import (
	"fmt"
	"math"
)

// CategoriasRecursos são as categorias fixas da distribuição de recursos
// de uma campanha.
var CategoriasRecursos = []string{
	"fundadores",
	"desenvolvimento",
	"comercial",
	"marketing",
	"cloud",
	"juridico",
	"reserva",
}

const toleranciaSoma = 0.1

// DistribuicaoRecursos valida o mapa categoria→percentual: apenas
// categorias conhecidas, nenhum percentual negativo e soma igual a 100
// com tolerância de ±0,1.
func DistribuicaoRecursos(percentuais map[string]float64) Erros {
	erros := Erros{}

	conhecidas := map[string]bool{}
	for _, c := range CategoriasRecursos {
		conhecidas[c] = true
	}

	soma := 0.0
	for categoria, pct := range percentuais {
		if !conhecidas[categoria] {
			erros[categoria] = "categoria desconhecida"
			continue
		}
		if pct < 0 {
			erros[categoria] = "percentual não pode ser negativo"
			continue
		}
		soma += pct
	}

	if math.Abs(soma-100) > toleranciaSoma {
		erros["distribuicao"] = fmt.Sprintf("os percentuais somam %.2f%%, devem somar 100%%", soma)
	}
	return erros
}
