package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"gitlab.com/scoreboard.net/internal/adapter/logging"
	"gitlab.com/scoreboard.net/internal/adapter/postgres"
	"gitlab.com/scoreboard.net/internal/adapter/postgres/resultrepository"
	"gitlab.com/scoreboard.net/internal/adapter/redis/resultcache"
	"gitlab.com/scoreboard.net/internal/config"
	"gitlab.com/scoreboard.net/internal/core/ports/secondary"
	"gitlab.com/scoreboard.net/internal/core/services/result"
	http2 "gitlab.com/scoreboard.net/internal/http"
	"gitlab.com/scoreboard.net/internal/metrics"
)

const serviceName = "scoreboard"

func main() {
	InitReader()

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := run(sysCfg, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(sysCfg *config.AppConfig, logger *logging.ZapLogger) error {
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Starting results service", "debug", sysCfg.DebugMode)

	ctxBg := context.Background()

	db, err := postgres.Open(ctxBg, sysCfg.PostgresConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	resultRepo := resultrepository.NewResultRepository(db, logger, sysCfg.PostgresConfig.Schema)
	if err := resultRepo.Migrate(ctxBg); err != nil {
		return err
	}

	var resultCache secondary.ResultCache = resultcache.NoopCache{}
	if sysCfg.RedisConfig.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     sysCfg.RedisConfig.Url,
			Password: sysCfg.RedisConfig.Password,
			DB:       sysCfg.RedisConfig.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctxBg).Err(); err != nil {
			// the cache is optional; reads fall back to postgres
			logger.Warn("Redis unreachable at startup", "addr", sysCfg.RedisConfig.Url, "error", err)
		}
		resultCache = resultcache.NewResultCache(redisClient, logger, sysCfg.RedisConfig.TTL)
		logger.Info("Results cache enabled", "addr", sysCfg.RedisConfig.Url, "ttl", sysCfg.RedisConfig.TTL)
	}

	m := metrics.New()

	//services
	resultSvc := result.NewResultService(resultRepo, resultCache, logger, m)
	serviceProvider := http2.NewServiceProvider(resultSvc)

	//server
	httpServer := http2.NewServer(sysCfg.HTTPConfig, serviceName, *serviceProvider, m, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}
	httpServer.Start(ctxBg)

	var serveErr error
	select {
	case <-quit:
	case serveErr = <-httpServer.Errors():
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, sysCfg.HTTPConfig.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("successfully shutdown server")
	return serveErr
}

// InitReader loads environment overrides from ENV_FILE (default .env) when it exists
func InitReader() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading %s file: %v", envFile, err)
	}
}
