package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/almatienda/catalog-service/config"
	_ "github.com/almatienda/catalog-service/docs"
	"github.com/almatienda/catalog-service/internal/database"
	"github.com/almatienda/catalog-service/internal/handlers"
	"github.com/almatienda/catalog-service/internal/middleware"
	"github.com/almatienda/catalog-service/internal/refdata"
	"github.com/almatienda/catalog-service/internal/storage"
	"github.com/almatienda/catalog-service/internal/sweepers"
	"github.com/almatienda/catalog-service/internal/telemetry"
)

const (
	refCacheTTL         = 5 * time.Minute
	imageSweepInterval  = 1 * time.Hour
	imageSweepGrace     = 24 * time.Hour
	shutdownGracePeriod = 5 * time.Second
)

// @title Catalog Service API
// @version 1.0
// @description Back-office catalog administration: products with variations, reference data, image uploads and XLSX export.
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting catalog service")

	ctx := context.Background()

	telemetryCleanup := telemetry.MustInit(ctx, telemetry.GetConfigFromEnv())
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := telemetryCleanup(cleanupCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to shut down telemetry")
		}
	}()

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Storage.BasePath).Msg("Failed to initialize image storage")
	}

	refCache := refdata.New(database.LoadReferenceData, refCacheTTL)
	handlers.Configure(refCache, store, cfg.Storage.PublicBaseURL, cfg.Storage.MaxUploadMB)

	imageSweeper := sweepers.NewImageSweeper(database.Pool(), store, logger, imageSweepInterval, imageSweepGrace)
	go imageSweeper.Start(ctx)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/media/*key", handlers.ServeImage)
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	writeLimit := middleware.RateLimitMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.RequestsPerSecond),
		BurstSize:         cfg.RateLimit.Burst,
	})

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	internal.Use(middleware.ServiceRateLimitMiddleware(50, 100))
	{
		internal.GET("/health", handlers.HealthCheck)

		products := internal.Group("/products")
		{
			products.GET("", handlers.ListProducts)
			products.POST("", writeLimit, handlers.CreateProduct)
			products.GET("/:productId", handlers.GetProduct)
			products.PUT("/:productId", writeLimit, handlers.UpdateProduct)
			products.DELETE("/:productId", writeLimit, handlers.DeleteProduct)
			products.PUT("/:productId/cost", writeLimit, handlers.UpdateProductCost)
		}

		attributes := internal.Group("/attributes")
		{
			attributes.GET("", handlers.ListAttributes)
			attributes.POST("/groups", writeLimit, handlers.CreateTermGroup)
			attributes.POST("/groups/:groupId/terms", writeLimit, handlers.CreateTerm)
			attributes.PUT("/groups/:groupId/active", writeLimit, handlers.SetTermGroupActive)
		}

		internal.GET("/price-lists", handlers.ListPriceLists)
		internal.GET("/warehouses", handlers.ListWarehouses)
		internal.GET("/stock-types", handlers.ListStockTypes)
		internal.GET("/categories", handlers.ListCategories)
		internal.POST("/categories", writeLimit, handlers.CreateCategory)
		internal.GET("/channels", handlers.ListChannels)

		internal.GET("/branches", handlers.ListBranches)
		internal.GET("/payment-methods", handlers.ListPaymentMethods)
		internal.GET("/users", handlers.ListUsers)
		internal.GET("/roles", handlers.ListRoles)

		internal.POST("/images", writeLimit, handlers.UploadImage)
		internal.GET("/export", handlers.ExportCatalog)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	imageSweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "catalog-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
