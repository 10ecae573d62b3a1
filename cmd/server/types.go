package main

import (
	"codeberg.org/geniusgpt/server/geniusgpt/tokens"
	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/config"
	"codeberg.org/geniusgpt/server/internal/generation"
	"codeberg.org/geniusgpt/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool
	config    *config.Config
	redis     *redis.Client
	tokenRepo *tokens.Repository
	tourRepo  *tours.Repository
	services  *Services
	router    *gin.Engine
}

// holds the external generation client and the metering service built on it
type Services struct {
	Generator  llm.Generator
	Generation *generation.Service
}
