package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/api/handlers"
	"ridehail/internal/api/middleware"
)

type Router struct {
	accountHandler *handlers.AccountHandler
	rideHandler    *handlers.RideHandler
}

func NewRouter(accountHandler *handlers.AccountHandler, rideHandler *handlers.RideHandler) *Router {
	return &Router{
		accountHandler: accountHandler,
		rideHandler:    rideHandler,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.POST("/signup", r.accountHandler.Signup)
	engine.GET("/accounts/:id", r.accountHandler.GetAccount)

	rides := engine.Group("/rides")
	{
		rides.POST("", r.rideHandler.RequestRide)
		rides.GET("/:id", r.rideHandler.GetRide)
	}
}

// NewEngine returns a gin engine with the logging and recovery middleware
// installed and every route registered.
func NewEngine(r *Router, logger *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.Setup(engine)
	return engine
}
