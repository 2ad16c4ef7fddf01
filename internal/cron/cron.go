package cron

import (
	"context"

	"skusync/config"
	"skusync/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

type Cron struct {
	logger      *zap.Logger
	conf        *config.Configuration
	syncService *service.SyncService
	server      *cron.Cron
}

// NewCron .
func NewCron(
	logger *zap.Logger,
	conf *config.Configuration,
	syncService *service.SyncService,
) *Cron {
	server := cron.New(
		cron.WithSeconds(),
	)

	return &Cron{
		logger:      logger,
		conf:        conf,
		syncService: syncService,
		server:      server,
	}
}

func (c *Cron) Run() error {
	// SYNC__SCHEDULE 留空表示只接受手動觸發
	if schedule := c.conf.Sync.Schedule; schedule != "" {
		if _, err := c.server.AddFunc(schedule, c.scheduledSync); err != nil {
			return err
		}
		c.logger.Info("sync schedule registered", zap.String("schedule", schedule))
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	c.server.Stop()
	return nil
}

func (c *Cron) scheduledSync() {
	started, err := c.syncService.Start(context.Background())
	if err != nil {
		// 上一輪還在跑就略過這次觸發
		c.logger.Warn("scheduled sync skipped", zap.Error(err))
		return
	}
	c.logger.Info("scheduled sync started", zap.String("runID", started.RunID))
}
