package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"upliftService/app/echo-server/metrics"
	"upliftService/app/echo-server/router"
	"upliftService/business/uplift"
	"upliftService/internal/middleware"
	fileRepo "upliftService/internal/repository/file"
	psqlRepo "upliftService/internal/repository/postgres"
	"upliftService/internal/rest"
	"upliftService/pkg/config"
	"upliftService/pkg/database"
	"upliftService/pkg/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Uplift Service", "version", cfg.App.Version, "artifact_source", cfg.Artifacts.Source)

	// Init artifact repo
	var repo uplift.ArtifactRepository
	switch cfg.Artifacts.Source {
	case "postgres":
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer database.ClosePostgres(db)
		logger.Info("Database connected successfully")
		repo = psqlRepo.NewArtifactRepository(db)
	default:
		repo = fileRepo.NewArtifactRepository(cfg.Artifacts.Path)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	models, bundle, err := uplift.LoadModelContext(loadCtx, repo)
	cancelLoad()
	if err != nil {
		logger.Fatal("Failed to load models", "error", err)
	}
	logger.Info("Models loaded",
		"control", bundle.Control.Name,
		"treated", bundle.Treated.Name,
		"scaler", bundle.Scaler.Name,
		"same_model", models.SameModel(),
		"importances_differ", models.ImportancesDiffer(),
	)

	// Init service
	upliftCfg, err := uplift.NewConfig(cfg.Uplift.NormalizationPolicy, cfg.Uplift.CapDivisor, cfg.Uplift.ZeroFillMissing)
	if err != nil {
		logger.Fatal("Invalid uplift config", "error", err)
	}
	upliftService, err := uplift.NewUpliftService(models, upliftCfg)
	if err != nil {
		logger.Fatal("Failed to init uplift service", "error", err)
	}

	// Init handler
	upliftHandler := rest.NewUpliftHandler(upliftService)
	adminHandler := rest.NewAdminHandler(upliftService, bundle.Summary(time.Now().UTC()))

	metrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetUpliftRoutes(e, api, upliftHandler)
	router.SetAdminRoutes(api, adminHandler, cfg.JWT.SecretKey)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
