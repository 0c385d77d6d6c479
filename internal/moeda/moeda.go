// Package moeda converte valores monetários entre a forma numérica e a
// exibição em real brasileiro ("R$ 1.234,56").
package moeda

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrValorInvalido = errors.New("valor monetário mal formado")

// Parse converte uma string de exibição BRL em float64. Aceita o símbolo
// "R$", separador de milhar "." e separador decimal ",". O sinal negativo
// pode vir antes ou depois do símbolo, cobrindo a saída de Format.
// Retorna ErrValorInvalido quando a entrada não é um número; quem chama
// deve tratar o erro como "campo não preenchido".
func Parse(display string) (float64, error) {
	s := strings.TrimSpace(display)

	negativo := strings.HasPrefix(s, "-")
	if negativo {
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrValorInvalido
	}

	if !negativo && strings.HasPrefix(s, "-") {
		negativo = true
		s = s[1:]
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrValorInvalido
	}
	if negativo {
		v = -v
	}
	return v, nil
}

// Format renderiza um float64 como moeda BRL com 2 casas decimais.
// Valores negativos são formatados como moeda negativa; rejeitá-los é
// responsabilidade da validação de quem chama.
func Format(v float64) string {
	negativo := v < 0 || (v == 0 && math.Signbit(v))
	abs := math.Abs(v)

	// arredonda para centavos antes de separar as partes
	centavos := int64(math.Round(abs * 100))
	inteiro := centavos / 100
	fracao := centavos % 100

	digitos := strconv.FormatInt(inteiro, 10)
	var b strings.Builder
	pre := len(digitos) % 3
	if pre > 0 {
		b.WriteString(digitos[:pre])
	}
	for i := pre; i < len(digitos); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digitos[i : i+3])
	}

	sinal := ""
	if negativo && (inteiro != 0 || fracao != 0) {
		sinal = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sinal, b.String(), fracao)
}

// FormatPercent renderiza um percentual com 2 casas decimais, ex: "12,50%".
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// FormatNumber renderiza um inteiro com separador de milhar, ex: "12.500".
func FormatNumber(n int64) string {
	negativo := n < 0
	if negativo {
		n = -n
	}
	digitos := strconv.FormatInt(n, 10)
	var b strings.Builder
	pre := len(digitos) % 3
	if pre > 0 {
		b.WriteString(digitos[:pre])
	}
	for i := pre; i < len(digitos); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digitos[i : i+3])
	}
	if negativo {
		return "-" + b.String()
	}
	return b.String()
}
