package handlers

import (
	"fmt"
	"net/http"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetDocumentos returns all documents with their versions
func GetDocumentos(c echo.Context) error {
	var documentos []models.Documento
	if err := db.DB.Preload("Versoes").Order("nome_principal").Find(&documentos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch documents",
		})
	}
	return c.JSON(http.StatusOK, documentos)
}

// GetDocumento returns a single document with its versions
func GetDocumento(c echo.Context) error {
	var documento models.Documento
	if err := db.DB.Preload("Versoes").First(&documento, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Document not found",
		})
	}
	return c.JSON(http.StatusOK, documento)
}

// CreateDocumento creates a document from a multipart form carrying the name
// and the first version's file
func CreateDocumento(c echo.Context) error {
	nome := textPolicy.Sanitize(c.FormValue("nomePrincipal"))
	if nome == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Document name is required",
		})
	}

	file, err := c.FormFile("arquivo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "A file is required",
		})
	}

	documento := models.Documento{NomePrincipal: nome}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&documento).Error; err != nil {
			return err
		}

		key := services.GenerateVersaoKey(documento.ID, file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			return err
		}

		versao := models.Versao{
			DocumentoID: documento.ID,
			Versao:      1,
			NomeArquivo: file.Filename,
			StorageKey:  result.Key,
			MimeType:    result.MimeType,
			FileSize:    result.FileSize,
		}
		if err := tx.Create(&versao).Error; err != nil {
			return err
		}

		documento.IDVersaoAtual = &versao.ID
		return tx.Save(&documento).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create document",
		})
	}

	db.DB.Preload("Versoes").First(&documento, documento.ID)
	return c.JSON(http.StatusCreated, documento)
}

// AddVersao uploads a new version for an existing document and makes it the
// current one
func AddVersao(c echo.Context) error {
	var documento models.Documento
	if err := db.DB.Preload("Versoes").First(&documento, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Document not found",
		})
	}

	file, err := c.FormFile("arquivo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "A file is required",
		})
	}

	next := 1
	for _, v := range documento.Versoes {
		if v.Versao >= next {
			next = v.Versao + 1
		}
	}

	key := services.GenerateVersaoKey(documento.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to store file",
		})
	}

	versao := models.Versao{
		DocumentoID: documento.ID,
		Versao:      next,
		NomeArquivo: file.Filename,
		StorageKey:  result.Key,
		MimeType:    result.MimeType,
		FileSize:    result.FileSize,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&versao).Error; err != nil {
			return err
		}
		return tx.Model(&documento).Update("id_versao_atual", versao.ID).Error
	})
	if err != nil {
		services.Storage.Delete(c.Request().Context(), result.Key)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to save version",
		})
	}

	return c.JSON(http.StatusCreated, versao)
}

// SetVersaoAtual points a document at one of its existing versions
func SetVersaoAtual(c echo.Context) error {
	var documento models.Documento
	if err := db.DB.First(&documento, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Document not found",
		})
	}

	var versao models.Versao
	if err := db.DB.First(&versao, "id = ? AND documento_id = ?", c.Param("versaoId"), documento.ID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Version not found",
		})
	}

	if err := db.DB.Model(&documento).Update("id_versao_atual", versao.ID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update document",
		})
	}

	db.DB.Preload("Versoes").First(&documento, documento.ID)
	return c.JSON(http.StatusOK, documento)
}

// DownloadVersao streams a stored version's file back to the client
func DownloadVersao(c echo.Context) error {
	var versao models.Versao
	if err := db.DB.First(&versao, "id = ?", c.Param("versaoId")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Version not found",
		})
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), versao.StorageKey)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Stored file not found",
		})
	}
	defer reader.Close()

	if versao.MimeType != "" {
		contentType = versao.MimeType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, versao.NomeArquivo))
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteDocumento removes a document, its versions and their stored files
func DeleteDocumento(c echo.Context) error {
	var documento models.Documento
	if err := db.DB.Preload("Versoes").First(&documento, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Document not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("documento_id = ?", documento.ID).Delete(&models.Versao{}).Error; err != nil {
			return err
		}
		return tx.Delete(&documento).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete document",
		})
	}

	for _, v := range documento.Versoes {
		services.Storage.Delete(c.Request().Context(), v.StorageKey)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetModelos returns all document templates
func GetModelos(c echo.Context) error {
	var modelos []models.Modelo
	if err := db.DB.Order("name").Find(&modelos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch templates",
		})
	}
	return c.JSON(http.StatusOK, modelos)
}

// CreateModelo uploads a new document template
func CreateModelo(c echo.Context) error {
	name := textPolicy.Sanitize(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Template name is required",
		})
	}

	file, err := c.FormFile("arquivo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "A file is required",
		})
	}

	key := services.GenerateModeloKey(file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to store file",
		})
	}

	modelo := models.Modelo{
		Name:        name,
		NomeArquivo: file.Filename,
		StorageKey:  result.Key,
		MimeType:    result.MimeType,
		FileSize:    result.FileSize,
	}
	if err := db.DB.Create(&modelo).Error; err != nil {
		services.Storage.Delete(c.Request().Context(), result.Key)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create template",
		})
	}
	return c.JSON(http.StatusCreated, modelo)
}

// DownloadModelo streams a template's file back to the client
func DownloadModelo(c echo.Context) error {
	var modelo models.Modelo
	if err := db.DB.First(&modelo, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Template not found",
		})
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), modelo.StorageKey)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Stored file not found",
		})
	}
	defer reader.Close()

	if modelo.MimeType != "" {
		contentType = modelo.MimeType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, modelo.NomeArquivo))
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteModelo removes a template and its stored file
func DeleteModelo(c echo.Context) error {
	var modelo models.Modelo
	if err := db.DB.First(&modelo, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Template not found",
		})
	}

	if err := db.DB.Delete(&modelo).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete template",
		})
	}

	services.Storage.Delete(c.Request().Context(), modelo.StorageKey)
	return c.NoContent(http.StatusNoContent)
}
