package perfil

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// BuscarPorUsuario retorna o perfil do usuário com os documentos
// pré-carregados.
func (r *Repository) BuscarPorUsuario(usuarioID uint) (*Perfil, error) {
	var p Perfil
	err := r.DB.Preload("Documentos").Where("usuario_id = ?", usuarioID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) BuscarPorID(id uint) (*Perfil, error) {
	var p Perfil
	err := r.DB.Preload("Documentos").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Salvar(p *Perfil) error {
	return r.DB.Save(p).Error
}

// Atualizar substitui os campos editáveis do perfil existente.
func (r *Repository) Atualizar(id uint, novosDados *Perfil) error {
	var existente Perfil
	if err := r.DB.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Avatar = novosDados.Avatar
	existente.Bio = novosDados.Bio
	existente.CEP = novosDados.CEP
	existente.Logradouro = novosDados.Logradouro
	existente.Numero = novosDados.Numero
	existente.Complemento = novosDados.Complemento
	existente.Bairro = novosDados.Bairro
	existente.Cidade = novosDados.Cidade
	existente.UF = novosDados.UF
	existente.Pais = novosDados.Pais

	return r.DB.Save(&existente).Error
}

func (r *Repository) AdicionarDocumento(d *Documento) error {
	return r.DB.Create(d).Error
}

func (r *Repository) BuscarDocumento(id uint) (*Documento, error) {
	var d Documento
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// AtualizarStatusDocumento registra o resultado da análise (admin).
func (r *Repository) AtualizarStatusDocumento(id uint, status string) error {
	return r.DB.Model(&Documento{}).Where("id = ?", id).Update("status", status).Error
}

func (r *Repository) RemoverDocumento(id uint) error {
	res := r.DB.Delete(&Documento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
