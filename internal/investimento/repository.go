package investimento

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) Create(inv *Investimento) error {
	return r.DB.Create(inv).Error
}

func (r *Repository) FindByID(id uint) (*Investimento, error) {
	var inv Investimento
	if err := r.DB.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) ListByCampanha(campanhaID uint) ([]Investimento, error) {
	var list []Investimento
	err := r.DB.
		Where("campanha_id = ?", campanhaID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *Repository) ListByInvestidor(investidorID uint) ([]Investimento, error) {
	var list []Investimento
	err := r.DB.
		Where("investidor_id = ?", investidorID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListByStartup busca todos os aportes de todas as campanhas de uma
// startup, pelo JOIN com a tabela de campanhas.
func (r *Repository) ListByStartup(startupID uint) ([]Investimento, error) {
	var list []Investimento
	err := r.DB.
		Table("investimentos").
		Select("investimentos.*").
		Joins("JOIN campanhas ON campanhas.id = investimentos.campanha_id").
		Where("campanhas.startup_id = ?", startupID).
		Order("investimentos.created_at DESC").
		Find(&list).Error
	return list, err
}

// Confirmar marca o aporte como confirmado e registra a data.
func (r *Repository) Confirmar(id uint, quando time.Time) error {
	return r.DB.Model(&Investimento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        StatusConfirmado,
		"confirmado_em": &quando,
	}).Error
}

func (r *Repository) Cancelar(id uint) error {
	return r.DB.Model(&Investimento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        StatusCancelado,
		"confirmado_em": nil,
	}).Error
}

// SumConfirmadoByCampanha soma o valor confirmado de uma campanha.
func (r *Repository) SumConfirmadoByCampanha(campanhaID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&Investimento{}).
		Where("campanha_id = ? AND status = ?", campanhaID, StatusConfirmado).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}

// SumTokensByInvestidor soma os tokens confirmados de um investidor em
// uma campanha.
func (r *Repository) SumTokensByInvestidor(investidorID, campanhaID uint) (int, error) {
	var total int
	err := r.DB.Model(&Investimento{}).
		Where("investidor_id = ? AND campanha_id = ? AND status = ?",
			investidorID, campanhaID, StatusConfirmado).
		Select("COALESCE(SUM(qtd_tokens), 0)").
		Scan(&total).Error
	return total, err
}
