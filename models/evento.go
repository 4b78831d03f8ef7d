package models

import (
	"time"
)

// Calendar event category codes
const (
	CategoriaGeral      = "g"
	CategoriaAudiencia  = "a"
	CategoriaReuniao    = "r"
	CategoriaPrazo      = "p"
	CategoriaUrgente    = "u"
	CategoriaEscritorio = "e"
	CategoriaOAB        = "o"
)

// CategoriaLabels maps category codes to display labels
var CategoriaLabels = map[string]string{
	CategoriaGeral:      "Geral",
	CategoriaAudiencia:  "Audiência",
	CategoriaReuniao:    "Reunião",
	CategoriaPrazo:      "Término de Prazo",
	CategoriaUrgente:    "Urgente",
	CategoriaEscritorio: "Escritório",
	CategoriaOAB:        "OAB",
}

// Evento is a calendar event created by office staff. Case deadlines also show
// up on the calendar, but those are projected at read time (services.CalendarEntry)
// and are never stored here.
type Evento struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Data      string `gorm:"not null;index" json:"data"`
	Hora      string `json:"hora"`
	Descricao string `gorm:"type:text;not null" json:"desc"`
	Categoria string `gorm:"not null;default:g" json:"cat"`
}

// TableName specifies the table name for Evento model
func (Evento) TableName() string {
	return "calendario"
}

// IsValidCategoria reports whether cat is one of the known category codes
func IsValidCategoria(cat string) bool {
	_, ok := CategoriaLabels[cat]
	return ok
}
