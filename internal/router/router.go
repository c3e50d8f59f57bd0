package router

import (
	"redeem-base/internal/app"
	"redeem-base/internal/handlers"
	"redeem-base/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the HTTP surface
func SetupRouter(container *app.ServiceContainer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(container.Logger))
	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheckHandler)
		api.POST("/card-info", container.CardHandler.CardInfo)
		api.POST("/verify-secret", container.CardHandler.VerifySecret)
		api.POST("/redeem", container.CardHandler.Redeem)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
