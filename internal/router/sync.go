package router

import (
	"skusync/internal/handler"
	"skusync/internal/middleware"

	"github.com/gin-gonic/gin"
)

type SyncRouter struct {
	apiKey      *middleware.APIKey
	syncHandler *handler.SyncHandler
}

func NewSyncRouter(
	apiKey *middleware.APIKey,
	syncHandler *handler.SyncHandler,
) *SyncRouter {
	return &SyncRouter{
		apiKey:      apiKey,
		syncHandler: syncHandler,
	}
}

func (sr *SyncRouter) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/sync", sr.apiKey.Handler())
	{
		g.POST("/run", sr.syncHandler.Trigger)
		g.GET("/status", sr.syncHandler.Status)
	}
}
