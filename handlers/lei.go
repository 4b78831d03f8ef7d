package handlers

import (
	"fmt"
	"net/http"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

func sanitizeLei(lei *models.Lei) {
	lei.Numero = textPolicy.Sanitize(lei.Numero)
	lei.Ano = textPolicy.Sanitize(lei.Ano)
	lei.Ementa = textPolicy.Sanitize(lei.Ementa)
}

func validateLei(lei *models.Lei) string {
	if lei.Numero == "" || lei.Ano == "" || lei.Ementa == "" {
		return "Number, year and summary are required"
	}
	if !models.IsValidLeiTipo(lei.Tipo) {
		return "Invalid law type"
	}
	return ""
}

// bindLeiForm reads the law fields from a multipart form so the attachment
// can ride along in the same request
func bindLeiForm(c echo.Context, lei *models.Lei) {
	lei.Tipo = c.FormValue("tipo")
	lei.Numero = c.FormValue("numero")
	lei.Ano = c.FormValue("ano")
	lei.Ementa = c.FormValue("ementa")
	if link := c.FormValue("link"); link != "" {
		lei.Link = &link
	} else {
		lei.Link = nil
	}
}

// GetLeis returns the law register, optionally filtered by a text query over
// number, year and summary
func GetLeis(c echo.Context) error {
	query := db.DB.Order("ano desc, numero")
	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("numero LIKE ? OR ano LIKE ? OR ementa LIKE ?", like, like, like)
	}
	if tipo := c.QueryParam("tipo"); tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}

	var leis []models.Lei
	if err := query.Find(&leis).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch laws",
		})
	}
	return c.JSON(http.StatusOK, leis)
}

// CreateLei registers a law, storing the attached copy when one is sent
func CreateLei(c echo.Context) error {
	var lei models.Lei
	bindLeiForm(c, &lei)
	if lei.Tipo == "" {
		lei.Tipo = models.LeiTipoOutro
	}

	sanitizeLei(&lei)
	if msg := validateLei(&lei); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	if err := db.DB.Create(&lei).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create law",
		})
	}

	if file, err := c.FormFile("arquivo"); err == nil {
		key := services.GenerateLeiKey(lei.ID, file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to store file",
			})
		}
		lei.ArquivoNome = &file.Filename
		lei.ArquivoKey = &result.Key
		if err := db.DB.Save(&lei).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to create law",
			})
		}
	}

	return c.JSON(http.StatusCreated, lei)
}

// UpdateLei updates a law's fields and optionally replaces its attachment
func UpdateLei(c echo.Context) error {
	var lei models.Lei
	if err := db.DB.First(&lei, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Law not found",
		})
	}

	bindLeiForm(c, &lei)
	sanitizeLei(&lei)
	if msg := validateLei(&lei); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	if file, err := c.FormFile("arquivo"); err == nil {
		oldKey := lei.ArquivoKey

		key := services.GenerateLeiKey(lei.ID, file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to store file",
			})
		}
		lei.ArquivoNome = &file.Filename
		lei.ArquivoKey = &result.Key

		if oldKey != nil {
			services.Storage.Delete(c.Request().Context(), *oldKey)
		}
	}

	if err := db.DB.Save(&lei).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update law",
		})
	}
	return c.JSON(http.StatusOK, lei)
}

// DownloadLeiArquivo streams a law's stored copy
func DownloadLeiArquivo(c echo.Context) error {
	var lei models.Lei
	if err := db.DB.First(&lei, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Law not found",
		})
	}
	if lei.ArquivoKey == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Law has no stored file",
		})
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), *lei.ArquivoKey)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Stored file not found",
		})
	}
	defer reader.Close()

	filename := "lei"
	if lei.ArquivoNome != nil {
		filename = *lei.ArquivoNome
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteLei removes a law and its stored copy
func DeleteLei(c echo.Context) error {
	var lei models.Lei
	if err := db.DB.First(&lei, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Law not found",
		})
	}

	if err := db.DB.Delete(&lei).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete law",
		})
	}

	if lei.ArquivoKey != nil {
		services.Storage.Delete(c.Request().Context(), *lei.ArquivoKey)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLeiTipos returns the accepted law types for the form
func GetLeiTipos(c echo.Context) error {
	return c.JSON(http.StatusOK, models.LeiTipos)
}
