package tokens

import (
	"codeberg.org/geniusgpt/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc BalanceReader) {
	tokenGroup := router.Group("/tokens")
	tokenGroup.Use(auth.AuthMiddleware())
	{
		tokenGroup.GET("", BalanceHandler(svc))
	}
}
