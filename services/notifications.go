package services

import (
	"fmt"
	"sort"
	"time"

	"juris_control_go/models"
)

// Notification types
const (
	NotificationTypePrazo  = "prazo"
	NotificationTypeEvento = "evento"
	NotificationTypeAlerta = "alerta"
)

// Navigation tab keys understood by the client
const (
	TabDashboard  = "dashboard"
	TabProcessos  = "proc"
	TabCalendario = "cal"
)

// deadlineAlertDays are the day-offsets at which an upcoming deadline triggers
// a reminder. Intentionally sparse: reminders, not a daily countdown.
var deadlineAlertDays = []int{0, 1, 3, 5}

// eventWindowDays is how far ahead (inclusive) calendar events notify
const eventWindowDays = 7

// ProcessoFilter narrows a case listing; it doubles as the navigation hint
// attached to notifications
type ProcessoFilter struct {
	Text   string `json:"text,omitempty"`
	Status string `json:"status,omitempty"`
	Prazo  string `json:"prazo,omitempty"`
}

// NavInfo tells the client where a notification leads
type NavInfo struct {
	Tab    string          `json:"tab"`
	Filter *ProcessoFilter `json:"filter,omitempty"`
	Date   string          `json:"date,omitempty"`
}

// Notification is one derived reminder. IDs are deterministic functions of the
// source record and the triggering condition, so repeated derivations over
// unchanged data produce identical id sets and a persisted dismissed list
// stays valid across refreshes.
type Notification struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Date     string  `json:"date"`
	NavInfo  NavInfo `json:"navInfo"`
}

// DeriveNotifications scans cases and calendar events and produces the sorted
// notification list for the given day. Pure function: no I/O, no side effects,
// deterministic. Dismissal filtering is the caller's job.
func DeriveNotifications(processos []models.Processo, eventos []models.Evento, today time.Time) []Notification {
	notifications := make([]Notification, 0)

	for _, p := range processos {
		if !p.HasActiveDeadline() {
			continue
		}
		prazoDate, err := ParseDate(*p.Prazo)
		if err != nil {
			// Unparseable deadline contributes nothing
			continue
		}

		daysDiff := DiffDays(today, prazoDate)

		if containsInt(deadlineAlertDays, daysDiff) {
			subtitle := fmt.Sprintf("Vence em %d dia(s).", daysDiff)
			if daysDiff == 0 {
				subtitle = "Vence hoje!"
			}
			notifications = append(notifications, Notification{
				ID:       fmt.Sprintf("proc-%d-due-%d", p.ID, daysDiff),
				Type:     NotificationTypePrazo,
				Title:    fmt.Sprintf("Prazo: %s", p.Numero),
				Subtitle: subtitle,
				Date:     *p.Prazo,
				NavInfo:  NavInfo{Tab: TabProcessos, Filter: &ProcessoFilter{Text: p.Numero}},
			})
		} else if daysDiff < 0 {
			notifications = append(notifications, Notification{
				ID:       fmt.Sprintf("proc-%d-vencido", p.ID),
				Type:     NotificationTypeAlerta,
				Title:    fmt.Sprintf("Vencido: %s", p.Numero),
				Subtitle: fmt.Sprintf("Prazo expirou há %d dia(s).", -daysDiff),
				Date:     *p.Prazo,
				NavInfo:  NavInfo{Tab: TabProcessos, Filter: &ProcessoFilter{Text: p.Numero}},
			})
		}
	}

	windowEnd := today.AddDate(0, 0, eventWindowDays)

	for _, e := range eventos {
		// Deadline-category entries mirror case deadlines and must not
		// double-notify
		if e.Data == "" || e.Categoria == models.CategoriaPrazo {
			continue
		}
		eventDate, err := ParseDate(e.Data)
		if err != nil {
			continue
		}
		if eventDate.Before(today) || eventDate.After(windowEnd) {
			continue
		}

		subtitle := fmt.Sprintf("Em %s", FormatBR(e.Data))
		if e.Hora != "" {
			subtitle += fmt.Sprintf(" às %s", e.Hora)
		}
		notifications = append(notifications, Notification{
			ID:       fmt.Sprintf("cal-%d", e.ID),
			Type:     NotificationTypeEvento,
			Title:    fmt.Sprintf("Evento: %s", e.Descricao),
			Subtitle: subtitle,
			Date:     e.Data,
			NavInfo:  NavInfo{Tab: TabCalendario, Date: e.Data},
		})
	}

	// Sort by parsed date, not lexically, so date strings from different
	// sources compare correctly
	sort.SliceStable(notifications, func(i, j int) bool {
		di, erri := ParseDate(notifications[i].Date)
		dj, errj := ParseDate(notifications[j].Date)
		if erri != nil || errj != nil {
			return erri == nil
		}
		return di.Before(dj)
	})

	return notifications
}

// FilterDismissed removes notifications whose ids the user already
// acknowledged
func FilterDismissed(notifications []Notification, dismissed models.StringList) []Notification {
	remaining := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if !dismissed.Contains(n.ID) {
			remaining = append(remaining, n)
		}
	}
	return remaining
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
