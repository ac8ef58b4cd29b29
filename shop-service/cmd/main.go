package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"perfumeshop/pkg/logger"
	"perfumeshop/shop-service/internal/app/shop/config"
	"perfumeshop/shop-service/internal/app/shop/handler"
	"perfumeshop/shop-service/internal/app/shop/processor"
	"perfumeshop/shop-service/internal/app/shop/repository"
	"perfumeshop/shop-service/internal/app/shop/service"
	"perfumeshop/shop-service/internal/app/shop/util"
)

const serviceName = "shop-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Msg("Connected to PostgreSQL")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := repository.Migrate(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	productCache := newProductCache(cfg.Redis)
	defer productCache.Close()

	publisher := newPublisher(cfg.Kafka)
	defer publisher.Close()

	countryRepo := repository.NewCountryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	cartContentRepo := repository.NewCartContentRepository(db)

	catalogService := service.NewCatalogService(countryRepo, brandRepo, productRepo, productCache, publisher)
	userService := service.NewUserService(userRepo)
	cartService := service.NewCartService(cartRepo, cartContentRepo)
	statsService := service.NewStatsService(userRepo, productRepo, brandRepo, countryRepo, cartRepo)

	if cfg.Stats.RefreshSchedule != "" {
		scheduler := processor.NewStatsScheduler(statsService)
		if err := scheduler.Start(ctx, cfg.Stats.RefreshSchedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start stats scheduler")
		}
		defer scheduler.Stop()
	}

	router := handler.SetupRoutes(handler.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		User:    handler.NewUserHandler(userService),
		Cart:    handler.NewCartHandler(cartService),
		Stats:   handler.NewStatsHandler(statsService),
	}, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Shop Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Shop Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info().Msg("Shop Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.NewGormLogger(cfg.LogLevel),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
					sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// newProductCache возвращает Redis кеш или no-op, если Redis не настроен/недоступен
func newProductCache(cfg config.RedisConfig) util.ProductCache {
	if cfg.Addr == "" {
		logger.Info().Msg("REDIS_ADDR not set, product cache disabled")
		return util.NoopProductCache{}
	}

	client, err := util.NewRedisClient(cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, product cache disabled")
		return util.NoopProductCache{}
	}

	logger.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.ProductCacheTTL).Msg("Connected to Redis")
	return util.NewRedisProductCache(client, cfg.ProductCacheTTL)
}

func newPublisher(cfg config.KafkaConfig) util.MessagePublisher {
	if len(cfg.Brokers) == 0 {
		logger.Info().Msg("KAFKA_BROKERS not set, product events disabled")
		return util.NoopPublisher{}
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("Initialized Kafka producer")
	return util.NewKafkaProducer(cfg.Brokers, cfg.Topic)
}
