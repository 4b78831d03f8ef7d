package models

import (
	"time"
)

// Processo type constants
const (
	TipoAdministrativo = "administrativo"
	TipoJudicial       = "judicial"
)

// Processo status constants
const (
	StatusPendente               = "pendente"
	StatusEmAnalise              = "em-analise"
	StatusAguardandoDocumentacao = "aguardando-documentacao"
	StatusEmDiligencia           = "em-diligencia"
	StatusFinalizado             = "finalizado"
	StatusArquivado              = "arquivado"
)

// StatusLabels maps status codes to their display labels
var StatusLabels = map[string]string{
	StatusPendente:               "Pendente",
	StatusEmAnalise:              "Em Análise",
	StatusAguardandoDocumentacao: "Aguardando Documentação",
	StatusEmDiligencia:           "Em Diligência",
	StatusFinalizado:             "Finalizado",
	StatusArquivado:              "Arquivado",
}

// Setores are the origin/destination departments known to the office
var Setores = []string{
	"CPL",
	"Comissões",
	"Controladoria",
	"Depto. Financeiro",
	"Diretoria Geral",
	"Gabinete Vereador",
	"Outros",
	"Presidência",
	"Recursos Humanos",
	"Secretaria Geral",
}

// Processo represents an administrative or judicial case tracked by the office.
// Dates are stored as YYYY-MM-DD strings: the domain works with calendar dates
// only, never with a time of day.
type Processo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Numero      string  `gorm:"not null;index" json:"num"`
	Tipo        string  `gorm:"not null;default:administrativo" json:"tipo"`
	Interessado string  `gorm:"not null" json:"int"`
	SetorOrigem string  `json:"setorOrigem"`
	Destino     string  `json:"dest"`
	Objeto      string  `gorm:"type:text" json:"obj"`
	AcaoTomada  string  `gorm:"type:text" json:"acao"`
	Entrada     string  `gorm:"not null" json:"ent"`
	Prazo       *string `json:"prazo,omitempty"`
	Saida       *string `json:"saida,omitempty"`
	Status      string  `gorm:"not null;default:pendente;index" json:"stat"`

	EmissorID   *uint `json:"emissorId,omitempty"`
	DocumentoID *uint `json:"docId,omitempty"`
}

// TableName specifies the table name for Processo model
func (Processo) TableName() string {
	return "processos"
}

// IsClosed reports whether the case reached a terminal status
func (p *Processo) IsClosed() bool {
	return p.Status == StatusFinalizado || p.Status == StatusArquivado
}

// HasActiveDeadline reports whether the deadline still counts toward alerts
// and notifications. Deadlines on finalized or archived cases are inert.
func (p *Processo) HasActiveDeadline() bool {
	return p.Prazo != nil && *p.Prazo != "" && !p.IsClosed()
}

// StatusLabel returns the display label for the case status
func (p *Processo) StatusLabel() string {
	if label, ok := StatusLabels[p.Status]; ok {
		return label
	}
	return p.Status
}
