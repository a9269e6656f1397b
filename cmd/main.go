package main

import (
	"context"
	"net/http"

	"dashboard-service/internal/analytics"
	"dashboard-service/internal/handler"
	mid "dashboard-service/internal/middleware"
	"dashboard-service/internal/source"
	"dashboard-service/internal/store"
	"dashboard-service/internal/sync"
	"dashboard-service/pkg/config"
	"dashboard-service/pkg/database"
	"dashboard-service/pkg/logger"
	"dashboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting dashboard-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.Connect(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Build the sync pipeline: adapter -> engine -> tracker -> orchestrator
	sourceClient := source.NewClient(appConfig.Source)
	productStore := store.NewProductStore(db)
	orderStore := store.NewOrderStore(db)
	syncLogStore := store.NewSyncLogStore(db)

	engine := sync.NewEngine(productStore, orderStore, log)
	tracker := sync.NewTracker(syncLogStore, log)
	orchestrator := sync.NewOrchestrator(sourceClient, engine, tracker, log)

	// Scheduled sync with retry policy, alongside the on-demand trigger
	if appConfig.Sync.Enabled {
		scheduler := sync.NewScheduler(
			orchestrator,
			appConfig.Sync.Interval,
			sync.RetryPolicyFromConfig(appConfig.Sync),
			log,
		)
		go scheduler.Run(context.Background())
		log.Info("Sync scheduler enabled",
			zap.Duration("interval", appConfig.Sync.Interval))
	}

	// Read side
	analyticsService := analytics.NewService(db)

	// Handlers
	syncHandler := handler.NewSyncHandler(orchestrator, tracker)
	dashboardHandler := handler.NewDashboardHandler(analyticsService)
	productHandler := handler.NewProductHandler(productStore)
	orderHandler := handler.NewOrderHandler(orderStore)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Sync trigger
	e.POST("/sync", syncHandler.TriggerSync)
	e.GET("/sync", syncHandler.SyncInfo)

	// Read-only dashboard API
	e.GET("/api/dashboard", dashboardHandler.GetDashboard)
	e.GET("/api/dashboard/metrics", dashboardHandler.GetMetrics)
	e.GET("/api/sync/logs", syncHandler.SyncLogs)
	e.GET("/api/products", productHandler.ListProducts)
	e.GET("/api/products/:id", productHandler.GetProduct)
	e.GET("/api/orders", orderHandler.ListOrders)
	e.GET("/api/orders/:id", orderHandler.GetOrder)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
