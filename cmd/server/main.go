package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finanzas-api/internal/config"
	"finanzas-api/internal/database"
	"finanzas-api/internal/handlers"
	custommiddleware "finanzas-api/internal/middleware"
	"finanzas-api/internal/repositories"
	"finanzas-api/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	categoryRepo := repositories.NewCategoryRepository(db)
	paymentMethodRepo := repositories.NewPaymentMethodRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	importService := services.NewImportService(categoryRepo, paymentMethodRepo, transactionRepo, logger)
	catalogService := services.NewCatalogService(categoryRepo, paymentMethodRepo)

	importHandler := handlers.NewImportHandler(importService, cfg.Upload.MaxFileSizeBytes, cfg.Upload.MaxBatchSize)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = custommiddleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(custommiddleware.RequestID())
	e.Use(custommiddleware.PanicRecovery())
	e.Use(custommiddleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.Use(custommiddleware.RequireAuth(cfg.JWT.Secret, cfg.JWT.Issuer))

	api.POST("/imports/csv/preview", importHandler.PreviewCSV)
	api.POST("/imports/pdf/preview", importHandler.PreviewPDF)
	api.POST("/imports/csv/confirm", importHandler.Confirm)
	api.POST("/imports/pdf/confirm", importHandler.Confirm)
	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/payment-methods", catalogHandler.ListPaymentMethods)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
