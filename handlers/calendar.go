package handlers

import (
	"net/http"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetCalendario returns the combined calendar feed: stored events plus
// read-only entries projected from active case deadlines. Optional from/to
// query params (YYYY-MM-DD, inclusive) narrow the range.
func GetCalendario(c echo.Context) error {
	var eventos []models.Evento
	if err := db.DB.Find(&eventos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch events",
		})
	}

	var processos []models.Processo
	if err := db.DB.Find(&processos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	entries := services.CombinedEntries(processos, eventos)
	entries = services.FilterEntriesByRange(entries, c.QueryParam("from"), c.QueryParam("to"))

	return c.JSON(http.StatusOK, entries)
}

func validateEvento(e *models.Evento) string {
	if e.Descricao == "" || e.Data == "" {
		return "Description and date are required"
	}
	if _, err := services.ParseDate(e.Data); err != nil {
		return "Invalid date"
	}
	if !models.IsValidCategoria(e.Categoria) {
		return "Invalid category"
	}
	// The deadline category is reserved for projected entries
	if e.Categoria == models.CategoriaPrazo {
		return "Deadline entries are projected from cases and cannot be created"
	}
	return ""
}

// CreateEvento creates a calendar event
func CreateEvento(c echo.Context) error {
	evento := new(models.Evento)
	if err := c.Bind(evento); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	evento.ID = 0
	if evento.Categoria == "" {
		evento.Categoria = models.CategoriaGeral
	}
	evento.Descricao = textPolicy.Sanitize(evento.Descricao)

	if msg := validateEvento(evento); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	if err := db.DB.Create(evento).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create event",
		})
	}
	return c.JSON(http.StatusCreated, evento)
}

// UpdateEvento updates a stored calendar event. Projected deadline entries
// (ids like "proc-42") are rejected.
func UpdateEvento(c echo.Context) error {
	id := c.Param("id")
	if services.IsProjectedEntryID(id) {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Projected deadline entries cannot be edited",
		})
	}

	var existing models.Evento
	if err := db.DB.First(&existing, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Event not found",
		})
	}

	updated := new(models.Evento)
	if err := c.Bind(updated); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Descricao = textPolicy.Sanitize(updated.Descricao)

	if msg := validateEvento(updated); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	if err := db.DB.Save(updated).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update event",
		})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteEvento removes a stored calendar event. Projected deadline entries
// are rejected.
func DeleteEvento(c echo.Context) error {
	id := c.Param("id")
	if services.IsProjectedEntryID(id) {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Projected deadline entries cannot be deleted",
		})
	}

	result := db.DB.Delete(&models.Evento{}, "id = ?", id)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete event",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Event not found",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
