package startup

import (
	"time"

	"github.com/iSelfToken/api-plataforma/internal/campanha"
	"gorm.io/gorm"
)

// Status de publicação da startup na plataforma.
const (
	StatusEmAnalise = "Em Análise"
	StatusAprovada  = "Aprovada"
	StatusRecusada  = "Recusada"
)

// Startup agrega as seções do formulário de cadastro: dados básicos,
// endereço e apresentação.
type Startup struct {
	ID        uint           `gorm:"primaryKey" json:"startupId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	FundadorID uint `gorm:"not null;index" json:"fundadorId"`

	// Seção 1: dados básicos
	Nome         string    `gorm:"not null" json:"nome"`
	CNPJ         string    `gorm:"size:14;unique" json:"cnpj"`
	RazaoSocial  string    `json:"razaoSocial"`
	DataFundacao time.Time `json:"dataFundacao"`
	Estagio      string    `gorm:"size:30" json:"estagio"`
	Setor        string    `json:"setor"`
	Site         string    `json:"site"`

	// Seção 2: endereço
	CEP        string `gorm:"size:8" json:"cep"`
	Logradouro string `json:"logradouro"`
	Numero     string `json:"numero"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `gorm:"size:2" json:"uf"`

	// Seção 3: apresentação
	Descricao     string   `gorm:"type:text" json:"descricao"`
	Logo          string   `json:"logo"`
	VideoPitch    string   `json:"videoPitch"`
	TamanhoEquipe int      `json:"tamanhoEquipe"`
	Midias        []string `gorm:"type:jsonb;serializer:json" json:"midias"`

	Status string `gorm:"size:30;not null;default:'Em Análise'" json:"status"`

	Campanhas []campanha.Campanha `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE" json:"campanhas"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Startup{})
}
