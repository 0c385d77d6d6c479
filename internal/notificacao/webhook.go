package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

func webhookURL() string {
	if url := os.Getenv("WEBHOOK_ALERTA_URL"); url != "" {
		return url
	}
	return "https://hooks.iselftoken.com.br/alerta"
}

func enviar(payload map[string]string) {
	body, _ := json.Marshal(payload)

	resp, err := http.Post(webhookURL(), "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}

// EnviarCodigoA2F notifica o canal de entrega com o código de verificação
// em duas etapas do usuário.
func EnviarCodigoA2F(email, codigo string) {
	enviar(map[string]string{
		"evento": "a2f",
		"email":  email,
		"codigo": codigo,
	})
}

// EnviarSenhaTemporaria notifica o canal de entrega com a senha
// temporária gerada na redefinição administrativa.
func EnviarSenhaTemporaria(email, senha string) {
	enviar(map[string]string{
		"evento": "senha-temporaria",
		"email":  email,
		"senha":  senha,
	})
}

// EnviarAlertaCNPJDuplicado alerta sobre tentativa de cadastro de startup
// com CNPJ já existente.
func EnviarAlertaCNPJDuplicado(cnpj string) {
	enviar(map[string]string{
		"evento":   "cnpj-duplicado",
		"mensagem": "Alerta: cadastro de startup com CNPJ já existente",
		"cnpj":     cnpj,
	})
}
