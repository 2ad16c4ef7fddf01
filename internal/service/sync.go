package service

import (
	"context"
	"sync"
	"time"

	"skusync/config"
	"skusync/internal/core"
	"skusync/internal/dto"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/pkg/report"
	"skusync/internal/service/catalog"
	"skusync/internal/service/feed"
	"skusync/internal/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultDelay   = 500 * time.Millisecond
	defaultBackoff = 2 * time.Second
)

// SyncService 循序執行「讀列 → SKU 查詢 → 建立或更新」的管線。
// 全程單執行緒、同一時間只有一個遠端請求在途；serve 模式下同時
// 只允許一個 run，狀態留在記憶體（不落地，跑完即逝）
type SyncService struct {
	conf    *config.Configuration
	logger  *zap.Logger
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	feeds   *Registry
	catalog catalog.Service
	pacer   *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	running bool
	status  dto.SyncStatusDto
}

// NewSyncService .
func NewSyncService(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	feeds *Registry,
	catalogService catalog.Service,
) *SyncService {
	delay := defaultDelay
	if conf.Sync.DelayMS > 0 {
		delay = time.Duration(conf.Sync.DelayMS) * time.Millisecond
	}
	backoff := defaultBackoff
	if conf.Sync.BackoffMS > 0 {
		backoff = time.Duration(conf.Sync.BackoffMS) * time.Millisecond
	}
	return &SyncService{
		conf:    conf,
		logger:  logger,
		trace:   trace,
		metric:  metric,
		feeds:   feeds,
		catalog: catalogService,
		// burst 1：第一個請求立即放行，其後依固定間隔放行
		pacer:   rate.NewLimiter(rate.Every(delay), 1),
		backoff: backoff,
		status:  dto.SyncStatusDto{State: core.RunStateIdle},
	}
}

// Status 目前（或最後一次）執行的快照
func (s *SyncService) Status() dto.SyncStatusDto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start serve 模式用：背景啟動一次同步，已有 run 在跑回 409
func (s *SyncService) Start(ctx context.Context) (dto.SyncStartedDto, error) {
	feedName := core.FeedName(s.conf.Source.Mode)

	s.mu.Lock()
	if s.running {
		runID := s.status.RunID
		s.mu.Unlock()
		return dto.SyncStartedDto{}, cErr.SyncAlreadyRunning("run " + runID + " is still in progress")
	}
	runID := s.beginLocked(feedName)
	s.mu.Unlock()

	go func() {
		// 與觸發請求的生命週期脫鉤
		if err := s.run(context.WithoutCancel(ctx), runID, report.Nop{}); err != nil {
			s.logger.Error("background sync failed",
				zap.String("runID", runID),
				zap.Error(err),
			)
		}
	}()

	return dto.SyncStartedDto{RunID: runID, Feed: feedName}, nil
}

// Run 前景執行到結束（sync 指令用）
func (s *SyncService) Run(ctx context.Context, reporter report.Reporter) error {
	feedName := core.FeedName(s.conf.Source.Mode)

	s.mu.Lock()
	if s.running {
		runID := s.status.RunID
		s.mu.Unlock()
		return cErr.SyncAlreadyRunning("run " + runID + " is still in progress")
	}
	runID := s.beginLocked(feedName)
	s.mu.Unlock()

	return s.run(ctx, runID, reporter)
}

// beginLocked 必須在持鎖下呼叫
func (s *SyncService) beginLocked(feedName core.FeedName) string {
	runID := uuid.NewString()
	now := time.Now().UTC()
	s.running = true
	s.status = dto.SyncStatusDto{
		RunID:     runID,
		Feed:      feedName,
		State:     core.RunStateRunning,
		StartedAt: &now,
	}
	return runID
}

func (s *SyncService) run(ctx context.Context, runID string, reporter report.Reporter) error {
	feedName := core.FeedName(s.conf.Source.Mode)
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanSyncRun))

	src, err := s.feeds.Feed(feedName)
	if err != nil {
		s.finish(core.RunStateFailed, err)
		end(err)
		return err
	}

	s.logger.Info("sync run started",
		zap.String("runID", runID),
		zap.String("feed", string(feedName)),
	)
	start := time.Now()

	locationID := core.LocationGID(s.conf.Shopify.LocationID)

	fetchErr := src.Fetch(ctx, func(row feed.Row) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.noteRow(row.SKU)
		outcome := s.syncRow(ctx, row, locationID)
		counts := s.noteOutcome(outcome)
		if s.metric.SyncRowsTotal != nil {
			s.metric.SyncRowsTotal.WithLabelValues(string(feedName), string(outcome)).Inc()
		}
		reporter.Step(counts, row.SKU)

		// 失敗列：固定退避後才碰下一列，避免對出錯的遠端雪上加霜
		if outcome == core.RowFailed {
			select {
			case <-time.After(s.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	counts := s.counts()
	elapsed := time.Since(start)
	reporter.Done(counts, elapsed)

	state := core.RunStateCompleted
	if fetchErr != nil {
		state = core.RunStateFailed
	}
	s.finish(state, fetchErr)

	if s.metric.SyncRunsTotal != nil {
		s.metric.SyncRunsTotal.WithLabelValues(string(feedName), string(state)).Inc()
	}
	s.trace.ApplyTraceAttributes(span, core.TraceSyncRunMeta{
		RunID:   runID,
		Feed:    string(feedName),
		Total:   counts.Total,
		Created: counts.Created,
		Updated: counts.Updated,
		Skipped: counts.Skipped,
		Failed:  counts.Failed,
	})
	end(fetchErr)

	s.logger.Info("sync run finished",
		zap.String("runID", runID),
		zap.String("state", string(state)),
		zap.Int("total", counts.Total),
		zap.Int("created", counts.Created),
		zap.Int("updated", counts.Updated),
		zap.Int("skipped", counts.Skipped),
		zap.Int("failed", counts.Failed),
		zap.Duration("elapsed", elapsed),
	)
	return fetchErr
}

// syncRow 單列的 lookup → create/update。任何錯誤記 stderr 後歸類 failed，
// 不往上拋，管線繼續下一列
func (s *SyncService) syncRow(ctx context.Context, row feed.Row, locationID string) core.RowOutcome {
	if row.SKU == "" {
		s.logger.Debug("row without sku, skipping", zap.Int("line", row.Line))
		return core.RowSkipped
	}

	ctx, span, end := s.trace.WithSpan(ctx, "sync_row")
	s.trace.ApplyTraceAttributes(span, core.TraceSyncRowMeta{SKU: row.SKU})

	outcome, err := s.applyRow(ctx, row, locationID)
	if err != nil {
		s.logger.Error("row sync failed",
			zap.String("sku", row.SKU),
			zap.Int("line", row.Line),
			zap.Error(err),
		)
		end(err)
		return core.RowFailed
	}
	s.trace.ApplyTraceAttributes(span, core.TraceSyncRowMeta{SKU: row.SKU, Outcome: string(outcome)})
	end(nil)
	return outcome
}

func (s *SyncService) applyRow(ctx context.Context, row feed.Row, locationID string) (core.RowOutcome, error) {
	if err := s.pacer.Wait(ctx); err != nil {
		return core.RowFailed, err
	}
	hit, err := s.catalog.FindVariantBySKU(ctx, row.SKU)
	if err != nil {
		return core.RowFailed, err
	}

	if hit == nil {
		if err := s.pacer.Wait(ctx); err != nil {
			return core.RowFailed, err
		}
		_, err := s.catalog.CreateProduct(ctx, catalog.NewProduct{
			Title:      row.Title,
			Vendor:     row.Vendor,
			SKU:        row.SKU,
			Barcode:    row.Barcode,
			Price:      row.Price,
			Quantity:   row.Quantity,
			LocationID: locationID,
		})
		if err != nil {
			return core.RowFailed, err
		}
		return core.RowCreated, nil
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return core.RowFailed, err
	}
	if err := s.catalog.SetOnHandQuantity(ctx, hit.InventoryItemID, locationID, row.Quantity); err != nil {
		return core.RowFailed, err
	}

	if s.conf.Sync.UpdatePrices && !row.Price.IsZero() && !row.Price.Equal(hit.Price) {
		if err := s.pacer.Wait(ctx); err != nil {
			return core.RowFailed, err
		}
		if err := s.catalog.UpdateVariantPrice(ctx, hit.ProductID, hit.VariantID, row.Price); err != nil {
			return core.RowFailed, err
		}
	}
	return core.RowUpdated, nil
}

func (s *SyncService) noteRow(sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Total++
	s.status.CurrentSKU = sku
}

func (s *SyncService) noteOutcome(outcome core.RowOutcome) report.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch outcome {
	case core.RowCreated:
		s.status.Created++
	case core.RowUpdated:
		s.status.Updated++
	case core.RowSkipped:
		s.status.Skipped++
	case core.RowFailed:
		s.status.Failed++
	}
	return countsLocked(s.status)
}

func (s *SyncService) counts() report.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countsLocked(s.status)
}

func (s *SyncService) finish(state core.RunState, err error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.status.State = state
	s.status.CompletedAt = &now
	s.status.CurrentSKU = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
}

func countsLocked(st dto.SyncStatusDto) report.Counts {
	return report.Counts{
		Total:   st.Total,
		Created: st.Created,
		Updated: st.Updated,
		Skipped: st.Skipped,
		Failed:  st.Failed,
	}
}
