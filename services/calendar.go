package services

import (
	"fmt"
	"strings"

	"juris_control_go/models"
)

// projectedIDPrefix marks calendar entries computed from case deadlines
const projectedIDPrefix = "proc-"

// CalendarEntry is what the calendar feed serves: either a stored event
// (editable, integer-id) or a deadline projected from a case (read-only,
// synthesized "proc-<caseId>" id, back-reference to the source case).
// Projected entries exist only in feed responses and are never persisted.
type CalendarEntry struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	Hora      string `json:"hora"`
	Descricao string `json:"desc"`
	Categoria string `json:"cat"`
	Readonly  bool   `json:"readonly,omitempty"`
	CaseID    *uint  `json:"caseId,omitempty"`
}

// StoredEntry converts a persisted event into a feed entry
func StoredEntry(e models.Evento) CalendarEntry {
	return CalendarEntry{
		ID:        fmt.Sprintf("%d", e.ID),
		Data:      e.Data,
		Hora:      e.Hora,
		Descricao: e.Descricao,
		Categoria: e.Categoria,
	}
}

// ProjectedDeadline builds the read-only calendar entry for a case deadline
func ProjectedDeadline(p models.Processo) CalendarEntry {
	caseID := p.ID
	return CalendarEntry{
		ID:        fmt.Sprintf("%s%d", projectedIDPrefix, p.ID),
		Data:      *p.Prazo,
		Descricao: fmt.Sprintf("Prazo: %s", p.Numero),
		Categoria: models.CategoriaPrazo,
		Readonly:  true,
		CaseID:    &caseID,
	}
}

// CombinedEntries merges stored events with the deadlines of cases that are
// still active. Ordering follows the inputs; callers filter by date range.
func CombinedEntries(processos []models.Processo, eventos []models.Evento) []CalendarEntry {
	entries := make([]CalendarEntry, 0, len(eventos)+len(processos))

	for _, e := range eventos {
		entries = append(entries, StoredEntry(e))
	}
	for _, p := range processos {
		if p.HasActiveDeadline() {
			entries = append(entries, ProjectedDeadline(p))
		}
	}

	return entries
}

// FilterEntriesByRange keeps entries dated within [from, to] inclusive, both
// given as YYYY-MM-DD strings. An empty bound is open-ended. Entries with
// unparseable dates are dropped.
func FilterEntriesByRange(entries []CalendarEntry, from, to string) []CalendarEntry {
	filtered := make([]CalendarEntry, 0, len(entries))
	for _, entry := range entries {
		date, err := ParseDate(entry.Data)
		if err != nil {
			continue
		}
		if from != "" {
			if fromDate, err := ParseDate(from); err == nil && date.Before(fromDate) {
				continue
			}
		}
		if to != "" {
			if toDate, err := ParseDate(to); err == nil && date.After(toDate) {
				continue
			}
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// IsProjectedEntryID reports whether an entry id denotes a projected deadline.
// Those entries cannot be edited or deleted.
func IsProjectedEntryID(id string) bool {
	return strings.HasPrefix(id, projectedIDPrefix)
}
