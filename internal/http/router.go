// README: HTTP route registration for the versioned API.
package http

import (
	"github.com/gin-gonic/gin"

	"eztravel/internal/http/handlers"
)

func registerRoutes(api *gin.RouterGroup, deps ServerDeps, limited gin.HandlerFunc) {
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Logger)
	auth := api.Group("/auth", limited)
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)
	auth.PUT("/reset-password", authHandler.ResetPassword)

	itineraryHandler := handlers.NewItineraryHandler(deps.Itineraries, deps.Logger)
	api.GET("/itineraries", itineraryHandler.List)
	api.GET("/itineraries/:id", itineraryHandler.Get)
	api.POST("/itineraries", limited, itineraryHandler.Create)
	api.PUT("/itineraries/:id", itineraryHandler.Update)
	api.DELETE("/itineraries/:id", itineraryHandler.Delete)

	api.GET("/cache", handlers.NewCacheHandler(deps.Cache, deps.Logger).List)

	metaHandler := handlers.NewMetaHandler(deps.Meta)
	api.GET("/meta/version", metaHandler.Version)
	api.GET("/meta/health", metaHandler.Health)
	api.GET("/meta/logs", metaHandler.Logs)
	api.GET("/meta/uptime", metaHandler.Uptime)
}
