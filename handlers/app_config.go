package handlers

import (
	"net/http"

	"juris_control_go/db"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

type themeRequest struct {
	Theme string `json:"theme"`
}

// GetAppConfig returns the shared application preferences
func GetAppConfig(c echo.Context) error {
	cfg, err := services.LoadAppConfig(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load configuration",
		})
	}
	return c.JSON(http.StatusOK, cfg)
}

// SetTheme stores the theme preference
func SetTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if err := services.SetTheme(db.DB, req.Theme); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid theme. Must be one of: light, dark, system",
		})
	}

	cfg, err := services.LoadAppConfig(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load configuration",
		})
	}
	return c.JSON(http.StatusOK, cfg)
}
