package main

import (
	"juris_control_go/config"
	"juris_control_go/db"
	"juris_control_go/handlers"
	"juris_control_go/middleware"
	"juris_control_go/models"
	"juris_control_go/services"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (R2 or local disk)
	services.InitializeStorage(cfg)

	// Make sure the office can always log in. A reset rebuilds the store with
	// the default admin/admin credential and flags a notice for the next login.
	reset, err := services.EnsureDefaultUser(db.DB)
	if err != nil {
		log.Fatalf("Failed to bootstrap users: %v", err)
	}
	if reset {
		log.Println("[WARNING] User store was rebuilt with default credentials (admin/admin). Change the password after logging in.")
		if err := services.SetResetNotice(db.DB); err != nil {
			log.Printf("Failed to record reset notice: %v", err)
		}
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/login", handlers.LoginHandler)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/logout", handlers.LogoutHandler)
		api.GET("/me", handlers.GetCurrentUserHandler)

		// Cases
		api.GET("/processos", handlers.GetProcessos)
		api.POST("/processos", handlers.CreateProcesso)
		api.GET("/processos/export/csv", handlers.ExportProcessosCSV)
		api.GET("/processos/export/xlsx", handlers.ExportProcessosXLSX)
		api.GET("/processos/:id", handlers.GetProcesso)
		api.PUT("/processos/:id", handlers.UpdateProcesso)
		api.DELETE("/processos/:id", handlers.DeleteProcesso)
		api.GET("/setores", handlers.GetSetores)

		// Issuing bodies
		api.GET("/emissores", handlers.GetEmissores)
		api.POST("/emissores", handlers.CreateEmissor)
		api.DELETE("/emissores/:id", handlers.DeleteEmissor)

		// Calendar
		api.GET("/calendario", handlers.GetCalendario)
		api.POST("/calendario", handlers.CreateEvento)
		api.PUT("/calendario/:id", handlers.UpdateEvento)
		api.DELETE("/calendario/:id", handlers.DeleteEvento)

		// Notifications
		api.GET("/notificacoes", handlers.GetNotifications)
		api.POST("/notificacoes/:id/dismiss", handlers.DismissNotification)
		api.DELETE("/notificacoes/dismissed", handlers.ClearDismissedNotifications)

		// Dashboard
		api.GET("/dashboard", handlers.GetDashboard)

		// Documents
		api.GET("/documentos", handlers.GetDocumentos)
		api.POST("/documentos", handlers.CreateDocumento)
		api.GET("/documentos/:id", handlers.GetDocumento)
		api.DELETE("/documentos/:id", handlers.DeleteDocumento)
		api.POST("/documentos/:id/versoes", handlers.AddVersao)
		api.PUT("/documentos/:id/versoes/:versaoId/atual", handlers.SetVersaoAtual)
		api.GET("/documentos/:id/versoes/:versaoId/download", handlers.DownloadVersao)

		// Document templates
		api.GET("/modelos", handlers.GetModelos)
		api.POST("/modelos", handlers.CreateModelo)
		api.GET("/modelos/:id/download", handlers.DownloadModelo)
		api.DELETE("/modelos/:id", handlers.DeleteModelo)

		// Law register
		api.GET("/leis", handlers.GetLeis)
		api.POST("/leis", handlers.CreateLei)
		api.GET("/leis/tipos", handlers.GetLeiTipos)
		api.PUT("/leis/:id", handlers.UpdateLei)
		api.GET("/leis/:id/download", handlers.DownloadLeiArquivo)
		api.DELETE("/leis/:id", handlers.DeleteLei)

		// Shared preferences
		api.GET("/config", handlers.GetAppConfig)
		api.PUT("/config/theme", handlers.SetTheme)

		// Admin-only routes
		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", handlers.GetUsers)
			admin.POST("/users", handlers.CreateUser)
			admin.PUT("/users/:id", handlers.UpdateUser)
			admin.DELETE("/users/:id", handlers.DeleteUser)
		}
	}

	// Expired sessions are swept every hour
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
