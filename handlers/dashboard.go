package handlers

import (
	"net/http"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetDashboard aggregates the current data snapshot into the dashboard
// payload (counters, monthly series, upcoming deadlines, alerts). Chart
// drawing is the client's job.
func GetDashboard(c echo.Context) error {
	var processos []models.Processo
	if err := db.DB.Find(&processos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	var eventos []models.Evento
	if err := db.DB.Find(&eventos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch events",
		})
	}

	dashboard := services.BuildDashboard(processos, eventos, services.TodayUTC())
	return c.JSON(http.StatusOK, dashboard)
}
