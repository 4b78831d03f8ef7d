package services

import (
	"fmt"
	"sort"
	"time"

	"juris_control_go/models"
)

// Dashboard alert type labels
const (
	AlertaVencido = "Vencido"
	AlertaInativo = "Inativo"
)

const (
	// upcomingWindowDays is the horizon of the "próximos prazos" panel
	upcomingWindowDays = 15
	// dueSoonDays is the horizon of the "vencendo" counter
	dueSoonDays = 5
	// inactivityThresholdDays flags cases sitting untouched since entry
	inactivityThresholdDays = 20
)

// DashboardStats are the headline counters
type DashboardStats struct {
	Total       int `json:"total"`
	Pendentes   int `json:"pend"`
	EmAnalise   int `json:"anal"`
	Finalizados int `json:"fin"`
	Alerta      int `json:"alert"`
	Vencidos    int `json:"venc"`
}

// DeadlineItem is one entry of the upcoming-deadlines panel
type DeadlineItem struct {
	Date string `json:"date"`
	Type string `json:"type"`
	Desc string `json:"desc"`
}

// AlertItem is one entry of the smart-alerts panel
type AlertItem struct {
	Type string `json:"type"`
	Desc string `json:"desc"`
}

// MonthlySeries are the per-month chart series (index 0 = January)
type MonthlySeries struct {
	Administrativo [12]int `json:"administrativo"`
	Judicial       [12]int `json:"judicial"`
	Pareceres      [12]int `json:"pareceres"`
}

// StatusCount pairs a status code with its case count
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Dashboard is the full payload behind the dashboard view. The client draws
// the charts; this only supplies the numbers.
type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	StatusCounts   []StatusCount  `json:"statusCounts"`
	Entradas       MonthlySeries  `json:"entradas"`
	ProximosPrazos []DeadlineItem `json:"proximosPrazos"`
	Alertas        []AlertItem    `json:"alertas"`
}

// BuildDashboard aggregates cases and calendar events into the dashboard
// payload for the given day. Pure function over the loaded snapshot.
func BuildDashboard(processos []models.Processo, eventos []models.Evento, today time.Time) Dashboard {
	var d Dashboard
	d.Stats.Total = len(processos)

	statusCounts := make(map[string]int)

	for _, p := range processos {
		statusCounts[p.Status]++

		switch p.Status {
		case models.StatusPendente:
			d.Stats.Pendentes++
		case models.StatusEmAnalise:
			d.Stats.EmAnalise++
		case models.StatusFinalizado:
			d.Stats.Finalizados++
		}

		if p.HasActiveDeadline() {
			if prazoDate, err := ParseDate(*p.Prazo); err == nil {
				daysDiff := DiffDays(today, prazoDate)
				if daysDiff < 0 {
					d.Stats.Vencidos++
				} else if daysDiff <= dueSoonDays {
					d.Stats.Alerta++
				}
			}
		}

		if entradaDate, err := ParseDate(p.Entrada); err == nil {
			month := int(entradaDate.Month()) - 1
			if p.Tipo == models.TipoAdministrativo {
				d.Entradas.Administrativo[month]++
			} else {
				d.Entradas.Judicial[month]++
			}
		}

		if p.DocumentoID != nil && p.Saida != nil {
			if saidaDate, err := ParseDate(*p.Saida); err == nil {
				d.Entradas.Pareceres[int(saidaDate.Month())-1]++
			}
		}
	}

	for _, status := range []string{
		models.StatusPendente,
		models.StatusEmAnalise,
		models.StatusAguardandoDocumentacao,
		models.StatusEmDiligencia,
		models.StatusFinalizado,
		models.StatusArquivado,
	} {
		d.StatusCounts = append(d.StatusCounts, StatusCount{
			Status: status,
			Label:  models.StatusLabels[status],
			Count:  statusCounts[status],
		})
	}

	d.ProximosPrazos = upcomingDeadlines(processos, eventos, today)
	d.Alertas = buildAlerts(processos, today)

	return d
}

// upcomingDeadlines merges active case deadlines and calendar events falling
// within the next 15 days, sorted by date
func upcomingDeadlines(processos []models.Processo, eventos []models.Evento, today time.Time) []DeadlineItem {
	windowEnd := today.AddDate(0, 0, upcomingWindowDays)
	items := make([]DeadlineItem, 0)

	inWindow := func(dateStr string) bool {
		d, err := ParseDate(dateStr)
		if err != nil {
			return false
		}
		return !d.Before(today) && !d.After(windowEnd)
	}

	for _, p := range processos {
		if p.HasActiveDeadline() && inWindow(*p.Prazo) {
			items = append(items, DeadlineItem{
				Date: *p.Prazo,
				Type: "Processo",
				Desc: fmt.Sprintf("Prazo Proc: %s", p.Numero),
			})
		}
	}
	for _, e := range eventos {
		if e.Data != "" && inWindow(e.Data) {
			items = append(items, DeadlineItem{
				Date: e.Data,
				Type: "Agenda",
				Desc: e.Descricao,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		di, _ := ParseDate(items[i].Date)
		dj, _ := ParseDate(items[j].Date)
		return di.Before(dj)
	})

	return items
}

// buildAlerts flags overdue cases and cases sitting untouched for more than
// 20 days while still pending or under review
func buildAlerts(processos []models.Processo, today time.Time) []AlertItem {
	alerts := make([]AlertItem, 0)

	for _, p := range processos {
		if p.HasActiveDeadline() {
			if prazoDate, err := ParseDate(*p.Prazo); err == nil && DiffDays(today, prazoDate) < 0 {
				alerts = append(alerts, AlertItem{
					Type: AlertaVencido,
					Desc: fmt.Sprintf("Processo %s está vencido.", p.Numero),
				})
			}
		}

		if p.Status == models.StatusEmAnalise || p.Status == models.StatusPendente {
			if entradaDate, err := ParseDate(p.Entrada); err == nil && DiffDays(entradaDate, today) > inactivityThresholdDays {
				alerts = append(alerts, AlertItem{
					Type: AlertaInativo,
					Desc: fmt.Sprintf("Processo %s parado há mais de %d dias.", p.Numero, inactivityThresholdDays),
				})
			}
		}
	}

	return alerts
}
