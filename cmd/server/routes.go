package main

import (
	"codeberg.org/geniusgpt/server/api/rest/chat"
	"codeberg.org/geniusgpt/server/api/rest/health"
	"codeberg.org/geniusgpt/server/api/rest/tokens"
	"codeberg.org/geniusgpt/server/api/rest/tours"
	"codeberg.org/geniusgpt/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	rateLimit, err := RateLimitMiddleware(server.redis)
	if err != nil {
		return err
	}

	router.Use(CORSMiddleware(server.config.AllowedOrigins))
	router.Use(logger.Middleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(rateLimit)

	{
		v1.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(v1, server.services.Generation)
		tours.RegisterRoutes(v1, server.services.Generation, server.tourRepo)
		tokens.RegisterRoutes(v1, server.services.Generation)
	}

	return nil
}
