package models

import (
	"time"
)

// Law type constants
const (
	LeiTipoFederal   = "Lei Federal"
	LeiTipoEstadual  = "Lei Estadual"
	LeiTipoMunicipal = "Lei Municipal"
	LeiTipoDecreto   = "Decreto"
	LeiTipoPortaria  = "Portaria"
	LeiTipoOutro     = "Outro"
)

// LeiTipos lists the accepted law types
var LeiTipos = []string{
	LeiTipoFederal,
	LeiTipoEstadual,
	LeiTipoMunicipal,
	LeiTipoDecreto,
	LeiTipoPortaria,
	LeiTipoOutro,
}

// Lei is an entry in the office's law register, optionally carrying a stored
// copy of the law text
type Lei struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tipo   string  `gorm:"not null;default:Outro" json:"tipo"`
	Numero string  `gorm:"not null" json:"numero"`
	Ano    string  `gorm:"not null" json:"ano"`
	Ementa string  `gorm:"type:text;not null" json:"ementa"`
	Link   *string `json:"link,omitempty"`

	ArquivoNome *string `json:"arquivoNome,omitempty"`
	ArquivoKey  *string `json:"-"`
}

// TableName specifies the table name for Lei model
func (Lei) TableName() string {
	return "leis"
}

// IsValidLeiTipo reports whether tipo is one of the accepted law types
func IsValidLeiTipo(tipo string) bool {
	for _, t := range LeiTipos {
		if t == tipo {
			return true
		}
	}
	return false
}
