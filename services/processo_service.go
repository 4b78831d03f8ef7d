package services

import (
	"sort"
	"strings"
	"time"

	"juris_control_go/models"
)

// Processo list ordering keys
const (
	OrderEntrada = "entrada"
	OrderPrazo   = "prazo"
	OrderStatus  = "status"
)

// Deadline filter values
const (
	PrazoFilterAlerta  = "alerta"
	PrazoFilterVencido = "vencido"
)

// ProcessosPerPage is the page size of the case listing
const ProcessosPerPage = 10

// FilterProcessos applies the text/status/deadline filters over the full case
// snapshot. Matching mirrors the client search: one lowercase substring probe
// across number, interested party, subject, origin sector, action and status
// label.
func FilterProcessos(processos []models.Processo, filter ProcessoFilter, today time.Time) []models.Processo {
	text := strings.ToLower(strings.TrimSpace(filter.Text))

	filtered := make([]models.Processo, 0, len(processos))
	for _, p := range processos {
		if text != "" && !matchesText(p, text) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Prazo != "" && !matchesPrazoFilter(p, filter.Prazo, today) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesText(p models.Processo, text string) bool {
	for _, field := range []string{p.Numero, p.Interessado, p.Objeto, p.SetorOrigem, p.AcaoTomada, p.StatusLabel()} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}

func matchesPrazoFilter(p models.Processo, prazoFilter string, today time.Time) bool {
	if !p.HasActiveDeadline() {
		return false
	}
	prazoDate, err := ParseDate(*p.Prazo)
	if err != nil {
		return false
	}
	daysDiff := DiffDays(today, prazoDate)

	switch prazoFilter {
	case PrazoFilterAlerta:
		return daysDiff >= 0 && daysDiff <= dueSoonDays
	case PrazoFilterVencido:
		return daysDiff < 0
	default:
		return false
	}
}

// SortProcessos orders the list in place: by deadline (ascending, missing
// last), by status code, or by entry date (descending, the default)
func SortProcessos(processos []models.Processo, order string) {
	switch order {
	case OrderPrazo:
		sort.SliceStable(processos, func(i, j int) bool {
			return prazoSortKey(processos[i]).Before(prazoSortKey(processos[j]))
		})
	case OrderStatus:
		sort.SliceStable(processos, func(i, j int) bool {
			return processos[i].Status < processos[j].Status
		})
	default:
		sort.SliceStable(processos, func(i, j int) bool {
			return entradaSortKey(processos[i]).After(entradaSortKey(processos[j]))
		})
	}
}

func prazoSortKey(p models.Processo) time.Time {
	if p.Prazo == nil {
		return maxSortDate
	}
	d, err := ParseDate(*p.Prazo)
	if err != nil {
		return maxSortDate
	}
	return d
}

func entradaSortKey(p models.Processo) time.Time {
	d, err := ParseDate(p.Entrada)
	if err != nil {
		return time.Time{}
	}
	return d
}

var maxSortDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// PaginateProcessos slices one page out of the filtered list and returns the
// page plus the total page count. Pages are 1-based.
func PaginateProcessos(processos []models.Processo, page int) ([]models.Processo, int) {
	if page < 1 {
		page = 1
	}

	totalPages := (len(processos) + ProcessosPerPage - 1) / ProcessosPerPage
	start := (page - 1) * ProcessosPerPage
	if start >= len(processos) {
		return []models.Processo{}, totalPages
	}

	end := start + ProcessosPerPage
	if end > len(processos) {
		end = len(processos)
	}
	return processos[start:end], totalPages
}
