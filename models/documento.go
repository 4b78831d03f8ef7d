package models

import (
	"time"
)

// Documento groups the versions of a single office document (e.g. a legal
// opinion that gets revised over time)
type Documento struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"updated_at"`

	NomePrincipal string `gorm:"not null" json:"nomePrincipal"`
	IDVersaoAtual *uint  `json:"idVersaoAtual"`

	Versoes []Versao `gorm:"foreignKey:DocumentoID" json:"versoes,omitempty"`
}

// TableName specifies the table name for Documento model
func (Documento) TableName() string {
	return "documentos"
}

// Versao is one stored revision of a Documento. The file body lives in the
// storage provider under StorageKey.
type Versao struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"adicionadoEm"`

	DocumentoID uint   `gorm:"not null;index" json:"idDocumento"`
	Versao      int    `gorm:"not null" json:"versao"`
	NomeArquivo string `gorm:"not null" json:"nomeArquivo"`
	StorageKey  string `gorm:"not null" json:"-"`
	MimeType    string `json:"mime_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
}

// TableName specifies the table name for Versao model
func (Versao) TableName() string {
	return "versoes"
}

// Modelo is a reusable document template uploaded by staff
type Modelo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `gorm:"not null" json:"name"`
	NomeArquivo string `gorm:"not null" json:"nomeArquivo"`
	StorageKey  string `gorm:"not null" json:"-"`
	MimeType    string `json:"mime_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
}

// TableName specifies the table name for Modelo model
func (Modelo) TableName() string {
	return "modelos"
}
