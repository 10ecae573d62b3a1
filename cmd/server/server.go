package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/geniusgpt/server/geniusgpt/tokens"
	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small for managed poolers with low connection caps
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	redisClient := redis.NewClient(redisOpts)

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	tokenRepo := tokens.NewRepository(db)
	tourRepo := tours.NewRepository(db)

	services, err := InitializeServices(tokenRepo, tourRepo)
	if err != nil {
		redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	router := gin.Default()

	server := &Server{
		db:        db,
		config:    cfg,
		redis:     redisClient,
		tokenRepo: tokenRepo,
		tourRepo:  tourRepo,
		services:  services,
		router:    router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}
