package perfil

import (
	"time"

	"gorm.io/gorm"
)

// Tipos e status dos documentos KYC/KYB.
const (
	DocContrato   = "contrato"
	DocCartaoCNPJ = "cartao-cnpj"
	DocMVP        = "mvp"
	DocIdentidade = "identidade"

	StatusPendente = "Pendente"
	StatusAprovado = "Aprovado"
	StatusRecusado = "Recusado"
)

// Perfil complementa o cadastro do usuário com endereço, mídia e os
// documentos enviados para verificação.
type Perfil struct {
	gorm.Model
	UsuarioID uint   `gorm:"not null;uniqueIndex" json:"usuarioId"`
	Avatar    string `json:"avatar"`
	Bio       string `gorm:"type:text" json:"bio"`

	// Endereço preenchido a partir da consulta de CEP
	CEP         string `gorm:"size:8" json:"cep"`
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	UF          string `gorm:"size:2" json:"uf"`
	Pais        string `json:"pais"`

	Documentos []Documento `gorm:"foreignKey:PerfilID;constraint:OnDelete:CASCADE" json:"documentos"`
}

// Documento registra a URL de um documento enviado e o seu status de
// análise. O arquivo em si fica no storage externo.
type Documento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PerfilID  uint           `gorm:"not null;index" json:"perfilId"`
	Tipo      string         `gorm:"size:30;not null" json:"tipo"`
	URL       string         `gorm:"not null" json:"url"`
	Status    string         `gorm:"size:20;not null;default:'Pendente'" json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Perfil{}, &Documento{})
}
