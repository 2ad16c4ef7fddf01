package handler

import (
	"skusync/config"
	"skusync/internal/pkg/response"
	"skusync/internal/service"
	"skusync/internal/telemetry"
	"skusync/utils/validate"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	conf        *config.Configuration
	trace       *telemetry.Trace
	syncService *service.SyncService
}

func NewSyncHandler(
	conf *config.Configuration,
	trace *telemetry.Trace,
	syncService *service.SyncService,
) *SyncHandler {
	return &SyncHandler{conf: conf, trace: trace, syncService: syncService}
}

// Trigger 背景啟動一次同步。已有 run 在跑時回 409
func (h *SyncHandler) Trigger(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	if err := validate.Configuration(h.conf); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	started, err := h.syncService.Start(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Accepted(c, started)
}

// Status 目前（或最後一次）執行的快照
func (h *SyncHandler) Status(c *gin.Context) {
	_, _, end := h.trace.WithSpan(c)
	defer end(nil)

	response.Success(c, h.syncService.Status())
}
