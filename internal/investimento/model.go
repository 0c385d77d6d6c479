package investimento

import (
	"time"

	"gorm.io/gorm"
)

// Formas de pagamento e status de um aporte.
const (
	PagamentoCartao = "cartao"
	PagamentoPix    = "pix"

	StatusPendente   = "Pendente"
	StatusConfirmado = "Confirmado"
	StatusCancelado  = "Cancelado"
)

// Investimento registra a compra de tokens de uma campanha por um
// investidor. É criado pelo checkout e confirmado pelo pagamento.
type Investimento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	InvestidorID uint `gorm:"not null;index" json:"investidorId"`
	CampanhaID   uint `gorm:"not null;index" json:"campanhaId"`

	QtdTokens      int     `gorm:"not null" json:"qtdTokens"`
	Valor          float64 `gorm:"not null" json:"valor"`
	FormaPagamento string  `gorm:"size:20;not null" json:"formaPagamento"`
	Parcelas       int     `gorm:"not null;default:1" json:"parcelas"`
	Status         string  `gorm:"size:20;not null;default:'Pendente';index" json:"status"`

	ConfirmadoEm *time.Time `json:"confirmadoEm"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Investimento{})
}
