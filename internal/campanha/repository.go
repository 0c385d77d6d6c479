package campanha

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Campanha) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Campanha, error) {
	var c Campanha
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByStartup(startupID uint) ([]Campanha, error) {
	var list []Campanha
	err := r.DB.Where("startup_id = ?", startupID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) FindByStatus(status string) ([]Campanha, error) {
	var list []Campanha
	err := r.DB.Where("status = ?", status).Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Campanha) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *Campanha) error {
	return r.DB.Delete(c).Error
}

// SomarCaptacao soma os aportes confirmados e atualiza captacao_atual.
// Se db == nil, usa o r.DB; permite uso dentro de transação.
func (r *Repository) SomarCaptacao(db *gorm.DB, campanhaID uint) error {
	if db == nil {
		db = r.DB
	}
	var total float64
	if err := db.Table("investimentos").
		Where("campanha_id = ? AND status = ? AND deleted_at IS NULL", campanhaID, "Confirmado").
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return db.Table("campanhas").
		Where("id = ?", campanhaID).
		Update("captacao_atual", total).Error
}
