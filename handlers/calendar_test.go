package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/stretchr/testify/assert"
)

func TestGetCalendarioCombinesProjectedDeadlines(t *testing.T) {
	setupTestDB(t)

	db.DB.Create(&models.Evento{Data: "2024-06-12", Hora: "10:00", Descricao: "Reunião CPL", Categoria: models.CategoriaReuniao})
	db.DB.Create(&models.Processo{Numero: "100/2024", Interessado: "Maria", Entrada: "2024-05-01",
		Status: models.StatusPendente, Prazo: stringToPtr("2024-06-20")})
	db.DB.Create(&models.Processo{Numero: "101/2024", Interessado: "João", Entrada: "2024-05-01",
		Status: models.StatusFinalizado, Prazo: stringToPtr("2024-06-21")})

	_, c, rec := setupEcho(http.MethodGet, "/api/calendario", nil)
	assert.NoError(t, GetCalendario(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []services.CalendarEntry
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)

	var projected *services.CalendarEntry
	for i := range entries {
		if entries[i].Readonly {
			projected = &entries[i]
		}
	}
	assert.NotNil(t, projected)
	assert.Equal(t, "Prazo: 100/2024", projected.Descricao)
	assert.Equal(t, models.CategoriaPrazo, projected.Categoria)
	assert.True(t, services.IsProjectedEntryID(projected.ID))
}

func TestGetCalendarioRange(t *testing.T) {
	setupTestDB(t)

	db.DB.Create(&models.Evento{Data: "2024-06-01", Descricao: "Antes", Categoria: models.CategoriaGeral})
	db.DB.Create(&models.Evento{Data: "2024-06-10", Descricao: "Dentro", Categoria: models.CategoriaGeral})
	db.DB.Create(&models.Evento{Data: "2024-06-20", Descricao: "Depois", Categoria: models.CategoriaGeral})

	_, c, rec := setupEcho(http.MethodGet, "/api/calendario?from=2024-06-05&to=2024-06-15", nil)
	assert.NoError(t, GetCalendario(c))

	var entries []services.CalendarEntry
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, "Dentro", entries[0].Descricao)
}

func TestCreateEvento(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/calendario",
		strings.NewReader(`{"data":"2024-06-12","hora":"14:00","desc":"Audiência","cat":"a"}`))
	assert.NoError(t, CreateEvento(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var evento models.Evento
	assert.NoError(t, db.DB.First(&evento).Error)
	assert.Equal(t, "Audiência", evento.Descricao)
	assert.Equal(t, models.CategoriaAudiencia, evento.Categoria)
}

func TestCreateEventoRejectsDeadlineCategory(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/calendario",
		strings.NewReader(`{"data":"2024-06-12","desc":"Falso prazo","cat":"p"}`))
	assert.NoError(t, CreateEvento(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEventoSanitizesDescription(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/calendario",
		strings.NewReader(`{"data":"2024-06-12","desc":"<script>alert(1)</script>Sessão","cat":"g"}`))
	assert.NoError(t, CreateEvento(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var evento models.Evento
	assert.NoError(t, db.DB.First(&evento).Error)
	assert.Equal(t, "Sessão", evento.Descricao)
}

func TestUpdateEventoRejectsProjectedEntries(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPut, "/api/calendario/proc-4",
		strings.NewReader(`{"data":"2024-06-12","desc":"Tentativa","cat":"g"}`))
	c.SetParamNames("id")
	c.SetParamValues("proc-4")

	assert.NoError(t, UpdateEvento(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteEventoRejectsProjectedEntries(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodDelete, "/api/calendario/proc-4", nil)
	c.SetParamNames("id")
	c.SetParamValues("proc-4")

	assert.NoError(t, DeleteEvento(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteEvento(t *testing.T) {
	setupTestDB(t)

	evento := models.Evento{Data: "2024-06-12", Descricao: "Apagar", Categoria: models.CategoriaGeral}
	db.DB.Create(&evento)

	_, c, rec := setupEcho(http.MethodDelete, "/api/calendario/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, DeleteEvento(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	db.DB.Model(&models.Evento{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
