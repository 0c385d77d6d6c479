package localidade

import "gorm.io/gorm"

type Pais struct {
	gorm.Model
	Nome    string   `gorm:"size:100;unique" json:"nome"`
	Sigla   string   `gorm:"size:2;unique" json:"sigla"`
	Estados []Estado `gorm:"foreignKey:PaisID" json:"estados,omitempty"`
}

type Estado struct {
	gorm.Model
	PaisID  uint     `json:"paisId"`
	Nome    string   `gorm:"size:100" json:"nome"`
	UF      string   `gorm:"size:2" json:"uf"`
	Cidades []Cidade `gorm:"foreignKey:EstadoID" json:"cidades,omitempty"`
}

type Cidade struct {
	gorm.Model
	EstadoID uint   `json:"estadoId"`
	Nome     string `gorm:"size:150" json:"nome"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pais{}, &Estado{}, &Cidade{})
}
