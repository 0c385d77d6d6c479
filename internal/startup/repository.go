package startup

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, s *Startup) error
	BuscarPorID(db *gorm.DB, id uint) (*Startup, error)
	BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Startup, error)
	ListarTodas(db *gorm.DB) ([]Startup, error)
	ListarPorFundador(db *gorm.DB, fundadorID uint) ([]Startup, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, s *Startup) error {
	return db.Save(s).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Startup, error) {
	var s Startup
	err := db.Preload("Campanhas").First(&s, id).Error
	return &s, err
}

func (r *repositoryImpl) BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Startup, error) {
	var s Startup
	err := db.Where("cnpj = ?", cnpj).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Startup, error) {
	var startups []Startup
	err := db.Preload("Campanhas").Find(&startups).Error
	return startups, err
}

func (r *repositoryImpl) ListarPorFundador(db *gorm.DB, fundadorID uint) ([]Startup, error) {
	var startups []Startup
	err := db.Preload("Campanhas").Where("fundador_id = ?", fundadorID).Find(&startups).Error
	return startups, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Startup{}, id).Error
}
