package localidade

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListarPaises() ([]Pais, error) {
	var paises []Pais
	err := r.DB.Order("nome").Find(&paises).Error
	return paises, err
}

// ListarEstados filtra por país quando paisID é informado; zero devolve
// todos os estados cadastrados.
func (r *Repository) ListarEstados(paisID uint) ([]Estado, error) {
	var estados []Estado
	consulta := r.DB.Order("nome")
	if paisID != 0 {
		consulta = consulta.Where("pais_id = ?", paisID)
	}
	err := consulta.Find(&estados).Error
	return estados, err
}

func (r *Repository) ListarCidades(estadoID uint) ([]Cidade, error) {
	var cidades []Cidade
	err := r.DB.Where("estado_id = ?", estadoID).Order("nome").Find(&cidades).Error
	return cidades, err
}
