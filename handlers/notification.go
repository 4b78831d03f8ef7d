package handlers

import (
	"net/http"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetNotifications derives the notification list from the current data
// snapshot and filters out ids the user already dismissed. Derivation is pure
// and deterministic, so it is safe to call on every refresh.
func GetNotifications(c echo.Context) error {
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

	cfg, err := services.LoadAppConfig(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load config",
		})
	}

	notifications := services.DeriveNotifications(processos, eventos, services.TodayUTC())
	notifications = services.FilterDismissed(notifications, cfg.DismissedNotifications)

	return c.JSON(http.StatusOK, notifications)
}

// DismissNotification marks a notification id as acknowledged
func DismissNotification(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Notification id is required",
		})
	}

	if err := services.DismissNotification(db.DB, id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to dismiss notification",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearDismissedNotifications resets the dismissed list so all current
// notifications show again
func ClearDismissedNotifications(c echo.Context) error {
	if err := services.ClearDismissedNotifications(db.DB); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to clear dismissed notifications",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
