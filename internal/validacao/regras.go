// Package validacao concentra as regras de validação de formulário da
// plataforma. Cada regra devolve uma mensagem legível ou "" quando o
// valor é aceito; os validadores de formulário rodam todas as regras,
// sem curto-circuito, e devolvem um mapa campo→mensagem recém-criado.
package validacao

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Erros mapeia nome de campo para mensagem. O formulário é válido sse o
// mapa estiver vazio.
type Erros map[string]string

var (
	reEmail    = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)
	reNome     = regexp.MustCompile(`^[\p{L}\s]+$`)
	reNaoDigit = regexp.MustCompile(`\D`)
)

// Nome: obrigatório, 3 a 100 caracteres, apenas letras, espaços e acentos.
func Nome(valor string) string {
	v := strings.TrimSpace(valor)
	if v == "" {
		return "nome é obrigatório"
	}
	n := len([]rune(v))
	if n < 3 || n > 100 {
		return "nome deve ter entre 3 e 100 caracteres"
	}
	if !reNome.MatchString(v) {
		return "nome deve conter apenas letras e espaços"
	}
	return ""
}

// Email: formato válido e no máximo 254 caracteres.
func Email(valor string) string {
	v := strings.TrimSpace(valor)
	if v == "" {
		return "e-mail é obrigatório"
	}
	if len(v) > 254 || !reEmail.MatchString(v) {
		return "e-mail inválido"
	}
	return ""
}

// Senha: 12 a 128 caracteres com maiúscula, minúscula, dígito e especial.
func Senha(valor string) string {
	n := len([]rune(valor))
	if n < 12 || n > 128 {
		return "senha deve ter entre 12 e 128 caracteres"
	}
	var maiuscula, minuscula, digito, especial bool
	for _, r := range valor {
		switch {
		case unicode.IsUpper(r):
			maiuscula = true
		case unicode.IsLower(r):
			minuscula = true
		case unicode.IsDigit(r):
			digito = true
		default:
			especial = true
		}
	}
	if !maiuscula || !minuscula || !digito || !especial {
		return "senha deve conter maiúscula, minúscula, dígito e caractere especial"
	}
	return ""
}

// ForcaSenha pontua a senha de 0 a 4 para exibição. Não bloqueia o envio
// além do mínimo exigido por Senha. Cinco predicados contam: as quatro
// classes de caractere e o bônus de comprimento >= 16.
func ForcaSenha(valor string) int {
	var maiuscula, minuscula, digito, especial bool
	for _, r := range valor {
		switch {
		case unicode.IsUpper(r):
			maiuscula = true
		case unicode.IsLower(r):
			minuscula = true
		case unicode.IsDigit(r):
			digito = true
		default:
			especial = true
		}
	}
	satisfeitos := 0
	for _, ok := range []bool{maiuscula, minuscula, digito, especial, len([]rune(valor)) >= 16} {
		if ok {
			satisfeitos++
		}
	}
	if satisfeitos == 0 {
		return 0
	}
	return satisfeitos - 1
}

// ConfirmarSenha: igualdade com a senha principal.
func ConfirmarSenha(senha, confirmacao string) string {
	if senha != confirmacao {
		return "as senhas não conferem"
	}
	return ""
}

// Telefone: 10 ou 11 dígitos após remover a máscara (padrão brasileiro).
func Telefone(valor string) string {
	digitos := reNaoDigit.ReplaceAllString(valor, "")
	if len(digitos) < 10 || len(digitos) > 11 {
		return "telefone deve ter 10 ou 11 dígitos"
	}
	return ""
}

// CPF: 11 dígitos após remover a máscara.
func CPF(valor string) string {
	digitos := reNaoDigit.ReplaceAllString(valor, "")
	if len(digitos) != 11 {
		return "CPF deve ter 11 dígitos"
	}
	return ""
}

// CNPJ: 14 dígitos após remover a máscara. A consulta cadastral externa é
// assíncrona e não participa desta checagem.
func CNPJ(valor string) string {
	digitos := reNaoDigit.ReplaceAllString(valor, "")
	if len(digitos) != 14 {
		return "CNPJ deve ter 14 dígitos"
	}
	return ""
}

// CEP: 8 dígitos após remover a máscara.
func CEP(valor string) string {
	digitos := reNaoDigit.ReplaceAllString(valor, "")
	if len(digitos) != 8 {
		return "CEP deve ter 8 dígitos"
	}
	return ""
}

// Termos: o aceite é obrigatório.
func Termos(aceito bool) string {
	if !aceito {
		return "é necessário aceitar os termos de uso"
	}
	return ""
}

// SomenteDigitos remove tudo que não for dígito (máscaras de CPF/CNPJ/
// telefone/CEP).
func SomenteDigitos(valor string) string {
	return reNaoDigit.ReplaceAllString(valor, "")
}

// Obrigatorio: campo texto genérico não vazio.
func Obrigatorio(campo, valor string) string {
	if strings.TrimSpace(valor) == "" {
		return fmt.Sprintf("%s é obrigatório", campo)
	}
	return ""
}
