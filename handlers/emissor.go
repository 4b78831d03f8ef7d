package handlers

import (
	"net/http"
	"strings"

	"juris_control_go/db"
	"juris_control_go/models"

	"github.com/labstack/echo/v4"
)

// GetEmissores returns the known issuing bodies
func GetEmissores(c echo.Context) error {
	var emissores []models.Emissor
	if err := db.DB.Order("name").Find(&emissores).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch issuers",
		})
	}
	return c.JSON(http.StatusOK, emissores)
}

// CreateEmissor adds an issuing body. Names are unique; recreating an
// existing one returns the stored row.
func CreateEmissor(c echo.Context) error {
	var emissor models.Emissor
	if err := c.Bind(&emissor); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	emissor.ID = 0
	emissor.Name = strings.TrimSpace(textPolicy.Sanitize(emissor.Name))
	if emissor.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Name is required",
		})
	}

	var existing models.Emissor
	if err := db.DB.First(&existing, "name = ?", emissor.Name).Error; err == nil {
		return c.JSON(http.StatusOK, existing)
	}

	if err := db.DB.Create(&emissor).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create issuer",
		})
	}
	return c.JSON(http.StatusCreated, emissor)
}

// DeleteEmissor removes an issuing body. Cases referencing it keep their
// emissor id cleared.
func DeleteEmissor(c echo.Context) error {
	var emissor models.Emissor
	if err := db.DB.First(&emissor, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Issuer not found",
		})
	}

	if err := db.DB.Model(&models.Processo{}).
		Where("emissor_id = ?", emissor.ID).
		Update("emissor_id", nil).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to detach issuer from cases",
		})
	}

	if err := db.DB.Delete(&emissor).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete issuer",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
