package campanha

import (
	"time"

	"gorm.io/gorm"
)

// Status do ciclo de vida da campanha.
const (
	StatusRascunho  = "Rascunho"
	StatusAtiva     = "Ativa"
	StatusEncerrada = "Encerrada"
)

// Campanha guarda os termos da oferta e a alocação derivada de tokens.
// Os campos derivados (qtd de tokens, equity por token, valuation) são
// sempre recalculados no servidor a partir de meta e equity; o payload do
// cliente nunca é confiado para eles.
type Campanha struct {
	ID        uint           `gorm:"primaryKey" json:"campanhaId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	StartupID uint `gorm:"not null;index" json:"startupId"`

	// Termos da oferta
	MetaCaptacao   float64 `gorm:"not null" json:"metaCaptacao"`
	EquityOfertado float64 `gorm:"not null" json:"equityOfertado"`

	// Alocação derivada
	QtdTokens      int     `gorm:"not null;default:0" json:"qtdTokens"`
	PrecoToken     float64 `gorm:"not null" json:"precoToken"`
	EquityPorToken float64 `gorm:"not null;default:0" json:"equityPorToken"`
	Valuation      float64 `gorm:"not null;default:0" json:"valuation"`

	// Reserva do fundador
	QtdReserva   int     `gorm:"not null;default:0" json:"qtdReserva"`
	CustoReserva float64 `gorm:"not null;default:0" json:"custoReserva"`

	// Distribuição de recursos por categoria (percentuais somando 100)
	DistribuicaoRecursos map[string]float64 `gorm:"type:jsonb;serializer:json" json:"distribuicaoRecursos"`

	CaptacaoAtual float64    `gorm:"not null;default:0" json:"captacaoAtual"`
	Status        string     `gorm:"size:30;not null;default:'Rascunho';index" json:"status"`
	EncerraEm     *time.Time `json:"encerraEm"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Campanha{})
}
