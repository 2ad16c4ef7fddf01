package command

import (
	"os"

	"skusync/config"
	"skusync/internal/pkg/report"
	"skusync/internal/service"
	"skusync/utils/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type SyncHandler struct {
	conf        *config.Configuration
	logger      *zap.Logger
	syncService *service.SyncService
}

func NewSyncHandler(
	conf *config.Configuration,
	logger *zap.Logger,
	syncService *service.SyncService,
) *SyncHandler {
	return &SyncHandler{
		conf:        conf,
		logger:      logger,
		syncService: syncService,
	}
}

// Run 前景跑完一輪同步。進度列寫 stdout，錯誤走 zap（stderr），
// 兩邊互不干擾
func (handler *SyncHandler) Run(cmd *cobra.Command, args []string) error {
	if err := validate.Configuration(handler.conf); err != nil {
		handler.logger.Error("configuration invalid", zap.Error(err))
		return err
	}

	reporter := report.NewConsole(os.Stdout)
	if err := handler.syncService.Run(cmd.Context(), reporter); err != nil {
		return err
	}
	return nil
}
