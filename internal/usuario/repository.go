package usuario

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	ListarPorPapel(db *gorm.DB, papel string) ([]Usuario, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Usuario) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.Where("email = ?", email).First(&u).Error
	return &u, err
}

// Busca primeiro por e-mail, depois por CPF, para evitar ambiguidade.
func (r *repositoryImpl) BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Usuario, error) {
	var u Usuario

	if err := db.Where("email = ?", valor).First(&u).Error; err == nil {
		return &u, nil
	}
	if err := db.Where("cpf = ?", valor).First(&u).Error; err == nil {
		return &u, nil
	}

	return nil, gorm.ErrRecordNotFound
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) ListarPorPapel(db *gorm.DB, papel string) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Where("papel = ?", papel).Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Usuario) error {
	var existente Usuario
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone

	return db.Save(&existente).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}
