package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/SscSPs/docflow_backend/internal/adapters/assets"
	"github.com/SscSPs/docflow_backend/internal/adapters/cache"
	"github.com/SscSPs/docflow_backend/internal/adapters/email"
	"github.com/SscSPs/docflow_backend/internal/composition"
	portsinfra "github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/SscSPs/docflow_backend/internal/core/services"
	"github.com/SscSPs/docflow_backend/internal/handlers"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/SscSPs/docflow_backend/internal/platform/config"
	"github.com/SscSPs/docflow_backend/internal/platform/metrics"
	"github.com/SscSPs/docflow_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/docflow_backend/internal/utils"
	"github.com/SscSPs/docflow_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Docflow Backend API
// @version 1.0
// @description Quotes, invoices and contracts with PDF composition and email dispatch.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New()

	var statsCache portsinfra.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, "docflow", logger)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		statsCache = redisCache
	} else {
		logger.Info("REDIS_URL not set, using in-process stats cache")
		statsCache = cache.NewMemoryCache()
	}

	var mailer portsinfra.Mailer
	if cfg.SMTP.Host != "" {
		mailer, err = email.NewSMTPMailer(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			Timeout:  cfg.SMTP.Timeout,
		}, logger)
		if err != nil {
			logger.Error("Failed to configure SMTP mailer", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		mailer = email.NewLogMailer(logger)
	}

	assetRouter := assets.NewRouter(m, logger)
	httpFetcher := assets.NewHTTPFetcher(cfg.AssetFetchTimeout)
	assetRouter.Handle("http", httpFetcher).Handle("https", httpFetcher)
	if s3Fetcher, err := assets.NewS3Fetcher(ctx, cfg.AWSRegion); err != nil {
		logger.Warn("S3 asset fetcher unavailable", slog.String("error", err.Error()))
	} else {
		assetRouter.Handle("s3", s3Fetcher)
	}

	renderer := composition.NewRenderer(composition.Organization{
		Name:            cfg.Organization.Name,
		TaxID:           cfg.Organization.TaxID,
		TradeRegistryID: cfg.Organization.TradeRegistryID,
		Address:         cfg.Organization.Address,
		Email:           cfg.Organization.Email,
		Phone:           cfg.Organization.Phone,
		Website:         cfg.Organization.Website,
		LogoURL:         cfg.Organization.LogoURL,
	}, utils.NewMoneyFormatter(cfg.Organization.Locale, cfg.Organization.Currency),
		composition.WithAssetFetcher(assetRouter),
		composition.WithFetchTimeout(cfg.AssetFetchTimeout),
		composition.WithTaxExemptionNotice(cfg.TaxExemptionNotice),
		composition.WithCompression(cfg.IsProduction),
		composition.WithLogger(logger),
	)

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), renderer, mailer,
		services.WithStatsCache(statsCache, cfg.StatsCacheTTL),
		services.WithMetrics(m),
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, m.Registry)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies every pending migration from ./migrations over a temporary
// database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
