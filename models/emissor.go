package models

import (
	"time"
)

// Emissor is an issuer referenced by cases (e.g. the authority that signed an
// opinion)
type Emissor struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for Emissor model
func (Emissor) TableName() string {
	return "emissores"
}
