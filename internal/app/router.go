package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dispatch/internal/handler"
	"dispatch/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	DriverHandler *handler.DriverHandler
	CargoHandler  *handler.CargoHandler
	StateHandler  *handler.StateHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
	Logger        *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicErrors())
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Store state.
		state := v1.Group("/state")
		{
			state.GET("", deps.StateHandler.Get)
			state.PUT("/selected-date", deps.StateHandler.SetSelectedDate)
		}
		v1.POST("/sync", deps.StateHandler.Sync)

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.POST("", deps.DriverHandler.Create)
			drivers.PATCH("/:id", deps.DriverHandler.Update)
			drivers.GET("/:id/cargos", deps.DriverHandler.GetCargos)
			drivers.GET("/:id/location", deps.DriverHandler.GetLocation)
			drivers.POST("/:id/cargos/reorder", deps.DriverHandler.ReorderCargos)
		}

		// Cargo routes.
		cargos := v1.Group("/cargos")
		{
			cargos.GET("", deps.CargoHandler.GetAll)
			cargos.POST("", deps.CargoHandler.Create)
			cargos.PATCH("/:id", deps.CargoHandler.Update)
			cargos.PUT("/:id/order", deps.CargoHandler.UpdateOrder)
		}
	}

	return router
}
