package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"juris_control_go/config"
	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name isolates tests from each other
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Processo{},
		&models.Evento{},
		&models.Documento{},
		&models.Versao{},
		&models.Modelo{},
		&models.Lei{},
		&models.Emissor{},
		&models.AppConfig{},
	)
	assert.NoError(t, err)

	db.DB = testDB
	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{Environment: "test"})

	return e, c, rec
}

func stringToPtr(s string) *string {
	return &s
}
