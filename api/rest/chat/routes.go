package chat

import (
	"codeberg.org/geniusgpt/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc ChatService) {
	chatGroup := router.Group("/chat")
	chatGroup.Use(auth.AuthMiddleware())
	{
		chatGroup.POST("", Handler(svc))
	}
}
