package handlers

import (
	"net/http"
	"strconv"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all HTML from user-supplied free text
var textPolicy = bluemonday.StrictPolicy()

type processoListResponse struct {
	Items      []models.Processo `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
}

// listFilteredProcessos loads the full case snapshot and applies the query
// filters, mirroring the in-memory search the client used to do
func listFilteredProcessos(c echo.Context) ([]models.Processo, error) {
	var processos []models.Processo
	if err := db.DB.Find(&processos).Error; err != nil {
		return nil, err
	}

	filter := services.ProcessoFilter{
		Text:   c.QueryParam("q"),
		Status: c.QueryParam("status"),
		Prazo:  c.QueryParam("prazo"),
	}

	filtered := services.FilterProcessos(processos, filter, services.TodayUTC())
	services.SortProcessos(filtered, c.QueryParam("ord"))
	return filtered, nil
}

// GetProcessos returns a filtered, sorted, paginated case listing
func GetProcessos(c echo.Context) error {
	filtered, err := listFilteredProcessos(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	items, totalPages := services.PaginateProcessos(filtered, page)
	if page < 1 {
		page = 1
	}

	return c.JSON(http.StatusOK, processoListResponse{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	})
}

// GetProcesso returns a single case by id
func GetProcesso(c echo.Context) error {
	var processo models.Processo
	if err := db.DB.First(&processo, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}
	return c.JSON(http.StatusOK, processo)
}

// sanitizeProcesso strips markup from the free-text fields
func sanitizeProcesso(p *models.Processo) {
	p.Numero = textPolicy.Sanitize(p.Numero)
	p.Interessado = textPolicy.Sanitize(p.Interessado)
	p.SetorOrigem = textPolicy.Sanitize(p.SetorOrigem)
	p.Destino = textPolicy.Sanitize(p.Destino)
	p.Objeto = textPolicy.Sanitize(p.Objeto)
	p.AcaoTomada = textPolicy.Sanitize(p.AcaoTomada)
}

func validateProcesso(p *models.Processo) string {
	if p.Numero == "" || p.Interessado == "" || p.Entrada == "" {
		return "Number, interested party and entry date are required"
	}
	if p.Tipo != models.TipoAdministrativo && p.Tipo != models.TipoJudicial {
		return "Invalid case type"
	}
	if _, ok := models.StatusLabels[p.Status]; !ok {
		return "Invalid status"
	}
	if _, err := services.ParseDate(p.Entrada); err != nil {
		return "Invalid entry date"
	}
	return ""
}

// CreateProcesso creates a new case
func CreateProcesso(c echo.Context) error {
	processo := new(models.Processo)
	if err := c.Bind(processo); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	processo.ID = 0
	if processo.Status == "" {
		processo.Status = models.StatusPendente
	}
	if processo.Tipo == "" {
		processo.Tipo = models.TipoAdministrativo
	}

	sanitizeProcesso(processo)
	if msg := validateProcesso(processo); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	if err := db.DB.Create(processo).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create case",
		})
	}
	return c.JSON(http.StatusCreated, processo)
}

// UpdateProcesso updates an existing case
func UpdateProcesso(c echo.Context) error {
	var existing models.Processo
	if err := db.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}

	updated := new(models.Processo)
	if err := c.Bind(updated); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	// Fields omitted from the payload keep their stored values
	if updated.Tipo == "" {
		updated.Tipo = existing.Tipo
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}

	sanitizeProcesso(updated)
	if msg := validateProcesso(updated); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	if err := db.DB.Save(updated).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update case",
		})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProcesso removes a case
func DeleteProcesso(c echo.Context) error {
	result := db.DB.Delete(&models.Processo{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete case",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportProcessosCSV streams the filtered case listing as CSV
func ExportProcessosCSV(c echo.Context) error {
	filtered, err := listFilteredProcessos(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	data, err := services.ExportProcessosCSV(filtered)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to export cases",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="processos.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportProcessosXLSX streams the filtered case listing as an Excel workbook
func ExportProcessosXLSX(c echo.Context) error {
	filtered, err := listFilteredProcessos(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	buf, err := services.ExportProcessosXLSX(filtered)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to export cases",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="processos.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetSetores returns the known departments for the case form
func GetSetores(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Setores)
}
