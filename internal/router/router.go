package router

import (
	"net/http"

	"skusync/config"
	"skusync/internal/middleware"
	"skusync/internal/pkg/response"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewSyncRouter,
	NewHealthRouter,
)

// 透過依賴注入將
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	syncRouter *SyncRouter,
	healthRouter *HealthRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(traceEntry.Handler())
	router.Use(logger.LoggerHandler())
	router.Use(cors.CorsHandler())
	router.Use(recovery.ErrorHandler())
	router.Use(responseMiddleware.FormatHandler())
	router.GET("/health-check", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Response{
			Code:        0,
			Data:        "ok",
			Message:     "success",
			Description: "service is alive",
		})
		c.Abort()
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 註冊同步入口路由
	syncRouter.RegisterRoutes(router)
	healthRouter.RegisterHealthRoutes(router)
	pprof.Register(router)
	return router
}
