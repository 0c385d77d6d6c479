package localidade

import (
	"errors"

	"gorm.io/gorm"
)

var estadosBrasil = []Estado{
	{Nome: "Acre", UF: "AC"},
	{Nome: "Alagoas", UF: "AL"},
	{Nome: "Amapá", UF: "AP"},
	{Nome: "Amazonas", UF: "AM"},
	{Nome: "Bahia", UF: "BA"},
	{Nome: "Ceará", UF: "CE"},
	{Nome: "Distrito Federal", UF: "DF"},
	{Nome: "Espírito Santo", UF: "ES"},
	{Nome: "Goiás", UF: "GO"},
	{Nome: "Maranhão", UF: "MA"},
	{Nome: "Mato Grosso", UF: "MT"},
	{Nome: "Mato Grosso do Sul", UF: "MS"},
	{Nome: "Minas Gerais", UF: "MG"},
	{Nome: "Pará", UF: "PA"},
	{Nome: "Paraíba", UF: "PB"},
	{Nome: "Paraná", UF: "PR"},
	{Nome: "Pernambuco", UF: "PE"},
	{Nome: "Piauí", UF: "PI"},
	{Nome: "Rio de Janeiro", UF: "RJ"},
	{Nome: "Rio Grande do Norte", UF: "RN"},
	{Nome: "Rio Grande do Sul", UF: "RS"},
	{Nome: "Rondônia", UF: "RO"},
	{Nome: "Roraima", UF: "RR"},
	{Nome: "Santa Catarina", UF: "SC"},
	{Nome: "São Paulo", UF: "SP"},
	{Nome: "Sergipe", UF: "SE"},
	{Nome: "Tocantins", UF: "TO"},
}

// Seed garante que o Brasil e seus estados existam. É idempotente e
// roda a cada subida do servidor.
func Seed(db *gorm.DB) error {
	var brasil Pais
	err := db.Where("sigla = ?", "BR").First(&brasil).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		brasil = Pais{Nome: "Brasil", Sigla: "BR"}
		if err := db.Create(&brasil).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, estado := range estadosBrasil {
		var existente Estado
		err := db.Where("pais_id = ? AND uf = ?", brasil.ID, estado.UF).First(&existente).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			estado.PaisID = brasil.ID
			if err := db.Create(&estado).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
