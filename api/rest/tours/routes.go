package tours

import (
	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc TourPlanner, tourRepo *tours.Repository) {
	tourGroup := router.Group("/tours")
	{
		// browsing the cache is unmetered and public
		tourGroup.GET("", ListToursHandler(tourRepo))
		tourGroup.GET("/:id", GetTourHandler(tourRepo))
		tourGroup.GET("/:id/image", TourImageHandler(tourRepo, svc))

		// generation is metered and requires an authenticated user
		tourGroup.POST("", auth.AuthMiddleware(), PlanTourHandler(svc))
	}
}
