package usuario

import (
	"gorm.io/gorm"
)

// Papéis aceitos no cadastro.
const (
	PapelInvestidor = "investidor"
	PapelFundador   = "fundador"
)

type Usuario struct {
	gorm.Model
	Nome     string `json:"nome"`
	Email    string `json:"email" gorm:"unique"`
	Telefone string `json:"telefone"`
	CPF      string `json:"cpf" gorm:"unique"`
	Papel    string `json:"papel" gorm:"size:20;not null"`
	Senha    string `json:"-"`
	IsAdmin  bool   `json:"isAdmin"`

	TermosAceitos bool `json:"termosAceitos"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
