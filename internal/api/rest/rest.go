package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/world-conquest/internal/api/feed"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, hub feed.Hub) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Classes and their inventory
		v1.GET("/classes", handler.ListClasses)
		v1.POST("/classes", handler.CreateClass)
		v1.GET("/classes/:id/inventory", handler.ListInventory)
		v1.POST("/classes/:id/inventory/:unit/use", handler.UseUnit)
		v1.POST("/classes/:id/inventory/:unit/award", handler.AwardUnit)

		// Students
		v1.GET("/students", handler.ListStudents)
		v1.POST("/students", handler.CreateStudent)
		v1.PUT("/students/:id/countries", handler.SelectCountries)
		v1.GET("/students/:id/stamps", handler.GetStampAccount)

		// Territories
		v1.GET("/territories", handler.ListTerritories)
		v1.POST("/territories", handler.CreateTerritory)

		// Stamp economy
		v1.POST("/stamps", handler.AwardStamps)

		// Battles
		v1.POST("/battles", handler.ExecuteBattle)
		v1.GET("/battles", handler.ListBattles)
		v1.GET("/battles/odds", handler.GetOdds)

		// Daily polls
		v1.PUT("/polls", handler.SubmitPoll)
		v1.GET("/polls", handler.GetPollResults)

		// Change feed: journal paging and the live websocket stream
		v1.GET("/changes", handler.GetChanges)
		v1.GET("/changes/latest", handler.GetLatestChangeCursor)
		if hub != nil {
			v1.GET("/feed", hub.ServeWS)
		}
	}
}
