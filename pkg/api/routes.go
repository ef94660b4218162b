package api

import (
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/core/port"
	"todoapi/pkg/logging"
	"todoapi/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Handlers struct {
	Auth *handler.AuthHandler
	Todo *handler.TodoHandler
}

func SetupRouter(handlers Handlers, authSvc port.AuthService, metrics *telemetry.AppMetrics, logger *logging.AppLogger) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(otelgin.Middleware(logger.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Metrics(metrics))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	registerRoutes(router, handlers, authSvc)

	return router
}

// SetupRouterForTests skips telemetry and logging wiring.
func SetupRouterForTests(handlers Handlers, authSvc port.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	registerRoutes(router, handlers, authSvc)

	return router
}

func registerRoutes(router *gin.Engine, handlers Handlers, authSvc port.AuthService) {
	public := router.Group("/api/auth")
	{
		public.POST("/register", handlers.Auth.Register)
		public.POST("/login", handlers.Auth.Login)
	}

	me := router.Group("/api/auth")
	me.Use(middleware.BearerAuth(authSvc))
	{
		me.GET("/me", handlers.Auth.Me)
	}

	todos := router.Group("/api/todos")
	todos.Use(middleware.BearerAuth(authSvc))
	{
		todos.GET("", handlers.Todo.List)
		todos.POST("", handlers.Todo.Create)
		todos.GET("/:id", handlers.Todo.Get)
		todos.PUT("/:id", handlers.Todo.Update)
		todos.DELETE("/:id", handlers.Todo.Delete)
	}
}
