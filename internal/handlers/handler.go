package handlers

import (
	"reefermon/internal/logger"
	"reefermon/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Dashboard page
	router.GET("/", h.dashboard)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Live status over WebSocket — same port
	router.GET("/ws", h.wsLive)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/org", h.getOrg)
		api.GET("/sensors", h.listSensors)

		assets := api.Group("/assets")
		{
			assets.GET("", h.listAssets)
			assets.GET("/:id/sensors", h.assetSensors)
			assets.GET("/:id/status", h.getStatus)
			assets.GET("/:id/history", h.getHistory)
		}
	}
}
