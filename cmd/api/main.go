package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/tasksea/marketplace-api/docs"
	"github.com/tasksea/marketplace-api/internal/api"
	"github.com/tasksea/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/tasksea/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tasksea/marketplace-api/internal/infrastructure/db/redis"
	"github.com/tasksea/marketplace-api/pkg/logger"
)

// @title           Marketplace API
// @version         1.0
// @description     Task marketplace where users post tasks, apply for them, and posters decide on applications.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	e := api.NewRouter(db, rdb, cfg.JWTSecret)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the unique and query indexes each collection relies
// on. Uniqueness guarantees (one application per applicant per task, unique
// emails and category names) live here rather than in application code.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewTaskRepository(db),
		mongodb.NewApplicationRepository(db),
		mongodb.NewUserRepository(db),
		mongodb.NewCategoryRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
