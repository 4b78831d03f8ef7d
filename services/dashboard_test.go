package services

import (
	"testing"
	"time"

	"juris_control_go/models"

	"github.com/stretchr/testify/assert"
)

var dashToday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestBuildDashboardStats(t *testing.T) {
	docID := uint(1)
	processos := []models.Processo{
		{ID: 1, Numero: "1/2024", Tipo: models.TipoAdministrativo, Entrada: "2024-01-15", Status: models.StatusPendente},
		{ID: 2, Numero: "2/2024", Tipo: models.TipoJudicial, Entrada: "2024-02-10", Status: models.StatusEmAnalise, Prazo: strPtr("2024-06-13")},
		{ID: 3, Numero: "3/2024", Tipo: models.TipoAdministrativo, Entrada: "2024-02-20", Status: models.StatusPendente, Prazo: strPtr("2024-06-01")},
		{ID: 4, Numero: "4/2024", Tipo: models.TipoAdministrativo, Entrada: "2024-03-05", Status: models.StatusFinalizado,
			Saida: strPtr("2024-04-02"), DocumentoID: &docID},
	}

	d := BuildDashboard(processos, nil, dashToday)

	assert.Equal(t, 4, d.Stats.Total)
	assert.Equal(t, 2, d.Stats.Pendentes)
	assert.Equal(t, 1, d.Stats.EmAnalise)
	assert.Equal(t, 1, d.Stats.Finalizados)
	assert.Equal(t, 1, d.Stats.Alerta)
	assert.Equal(t, 1, d.Stats.Vencidos)

	// Monthly series: index 0 = January
	assert.Equal(t, 1, d.Entradas.Administrativo[0])
	assert.Equal(t, 1, d.Entradas.Judicial[1])
	assert.Equal(t, 1, d.Entradas.Administrativo[1])
	assert.Equal(t, 1, d.Entradas.Administrativo[2])
	// Opinions count in their exit month
	assert.Equal(t, 1, d.Entradas.Pareceres[3])
}

func TestBuildDashboardStatusCounts(t *testing.T) {
	processos := []models.Processo{
		{ID: 1, Numero: "1/2024", Entrada: "2024-06-01", Status: models.StatusPendente},
		{ID: 2, Numero: "2/2024", Entrada: "2024-06-01", Status: models.StatusPendente},
		{ID: 3, Numero: "3/2024", Entrada: "2024-06-01", Status: models.StatusArquivado},
	}

	d := BuildDashboard(processos, nil, dashToday)

	counts := make(map[string]int)
	for _, sc := range d.StatusCounts {
		counts[sc.Status] = sc.Count
	}
	assert.Equal(t, 2, counts[models.StatusPendente])
	assert.Equal(t, 1, counts[models.StatusArquivado])
	assert.Equal(t, 0, counts[models.StatusEmDiligencia])
	// Every known status has a row, even at zero
	assert.Len(t, d.StatusCounts, len(models.StatusLabels))
}

func TestBuildDashboardUpcomingDeadlines(t *testing.T) {
	processos := []models.Processo{
		{ID: 1, Numero: "1/2024", Entrada: "2024-06-01", Status: models.StatusPendente, Prazo: strPtr("2024-06-25")},
		{ID: 2, Numero: "2/2024", Entrada: "2024-06-01", Status: models.StatusPendente, Prazo: strPtr("2024-06-26")}, // past the 15-day window
		{ID: 3, Numero: "3/2024", Entrada: "2024-06-01", Status: models.StatusPendente, Prazo: strPtr("2024-06-09")}, // past
	}
	eventos := []models.Evento{
		{ID: 1, Data: "2024-06-12", Descricao: "Sessão", Categoria: models.CategoriaGeral},
	}

	d := BuildDashboard(processos, eventos, dashToday)

	assert.Len(t, d.ProximosPrazos, 2)
	// Sorted by date: the event first, then the deadline
	assert.Equal(t, "Agenda", d.ProximosPrazos[0].Type)
	assert.Equal(t, "Sessão", d.ProximosPrazos[0].Desc)
	assert.Equal(t, "Processo", d.ProximosPrazos[1].Type)
	assert.Equal(t, "Prazo Proc: 1/2024", d.ProximosPrazos[1].Desc)
}

func TestBuildDashboardAlerts(t *testing.T) {
	processos := []models.Processo{
		{ID: 1, Numero: "1/2024", Entrada: "2024-06-01", Status: models.StatusPendente, Prazo: strPtr("2024-06-02")},
		{ID: 2, Numero: "2/2024", Entrada: "2024-05-01", Status: models.StatusEmAnalise},
		{ID: 3, Numero: "3/2024", Entrada: "2024-05-01", Status: models.StatusFinalizado},
	}

	d := BuildDashboard(processos, nil, dashToday)

	assert.Len(t, d.Alertas, 2)
	assert.Equal(t, AlertaVencido, d.Alertas[0].Type)
	assert.Contains(t, d.Alertas[0].Desc, "1/2024")
	assert.Equal(t, AlertaInativo, d.Alertas[1].Type)
	assert.Contains(t, d.Alertas[1].Desc, "2/2024")
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, nil, dashToday)
	assert.Equal(t, 0, d.Stats.Total)
	assert.Empty(t, d.ProximosPrazos)
	assert.Empty(t, d.Alertas)
	assert.Len(t, d.StatusCounts, len(models.StatusLabels))
}
