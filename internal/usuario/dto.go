package usuario

// request DTOs

type CadastroRequest struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	CPF            string `json:"cpf"`
	Papel          string `json:"papel"`
	Senha          string `json:"senha"`
	ConfirmarSenha string `json:"confirmarSenha"`
	TermosAceitos  bool   `json:"termosAceitos"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type A2FRequest struct {
	Email  string `json:"email"`
	Codigo string `json:"codigo"`
}

type NovoCodigoRequest struct {
	Email string `json:"email"`
}
