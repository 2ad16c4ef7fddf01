package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"skusync/config"
	"skusync/internal/core"
	cErr "skusync/internal/pkg/error"
	"skusync/internal/pkg/report"
	"skusync/internal/service/catalog"
	"skusync/internal/service/feed"
	"skusync/internal/telemetry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// fakeFeed 依序吐出固定列
type fakeFeed struct {
	rows []feed.Row
	err  error
}

func (f *fakeFeed) Name() core.FeedName { return core.FeedCSV }

func (f *fakeFeed) Fetch(ctx context.Context, emit func(feed.Row) error) error {
	for _, r := range f.rows {
		if err := emit(r); err != nil {
			return err
		}
	}
	return f.err
}

// fakeCatalog 記錄呼叫順序與時間，existing 有值視為命中
type fakeCatalog struct {
	mu       sync.Mutex
	existing map[string]*catalog.VariantHit
	findErr  map[string]error
	calls    []string
	stamps   []time.Time
}

func (f *fakeCatalog) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.stamps = append(f.stamps, time.Now())
}

func (f *fakeCatalog) FindVariantBySKU(ctx context.Context, sku string) (*catalog.VariantHit, error) {
	f.record("find:" + sku)
	if err := f.findErr[sku]; err != nil {
		return nil, err
	}
	return f.existing[sku], nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, p catalog.NewProduct) (string, error) {
	f.record("create:" + p.SKU)
	return "gid://shopify/Product/100", nil
}

func (f *fakeCatalog) SetOnHandQuantity(ctx context.Context, inventoryItemID, locationID string, quantity int) error {
	f.record("setQty:" + inventoryItemID)
	return nil
}

func (f *fakeCatalog) UpdateVariantPrice(ctx context.Context, productID, variantID string, price decimal.Decimal) error {
	f.record("price:" + variantID)
	return nil
}

func newTestSyncService(rows []feed.Row, cat *fakeCatalog, updatePrices bool) *SyncService {
	conf := &config.Configuration{}
	conf.Source.Mode = "csv"
	conf.Shopify.LocationID = "77"
	conf.Sync.DelayMS = 1
	conf.Sync.BackoffMS = 1
	conf.Sync.UpdatePrices = updatePrices
	if cat.existing == nil {
		cat.existing = map[string]*catalog.VariantHit{}
	}

	reg := &Registry{feeds: map[core.FeedName]feed.Service{
		core.FeedCSV: &fakeFeed{rows: rows},
	}}
	return NewSyncService(conf, zap.NewNop(), &telemetry.Trace{}, &telemetry.Metric{}, reg, cat)
}

func TestRunCreatesMissingProduct(t *testing.T) {
	cat := &fakeCatalog{}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "NEW-1", Title: "Widget", Price: decimal.RequireFromString("9.90"), Quantity: 4},
	}, cat, false)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))

	assert.Equal(t, []string{"find:NEW-1", "create:NEW-1"}, cat.calls)
	status := s.Status()
	assert.Equal(t, core.RunStateCompleted, status.State)
	assert.Equal(t, 1, status.Total)
	assert.Equal(t, 1, status.Created)
	assert.Equal(t, 0, status.Failed)
	require.NotNil(t, status.CompletedAt)
}

func TestRunPacesConsecutiveRemoteCalls(t *testing.T) {
	hit := func(n string) *catalog.VariantHit {
		return &catalog.VariantHit{
			ProductID:       "gid://shopify/Product/" + n,
			VariantID:       "gid://shopify/ProductVariant/" + n,
			InventoryItemID: "gid://shopify/InventoryItem/" + n,
		}
	}
	cat := &fakeCatalog{existing: map[string]*catalog.VariantHit{
		"P-1": hit("1"),
		"P-2": hit("2"),
	}}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "P-1", Quantity: 3},
		{Line: 2, SKU: "P-2", Quantity: 5},
	}, cat, false)

	// 固定間隔 40ms：查詢與寫入之間也要等，不只列與列之間
	const gap = 40 * time.Millisecond
	s.pacer = rate.NewLimiter(rate.Every(gap), 1)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))

	require.Len(t, cat.stamps, 4)
	for i := 1; i < len(cat.stamps); i++ {
		elapsed := cat.stamps[i].Sub(cat.stamps[i-1])
		assert.GreaterOrEqual(t, elapsed, gap-10*time.Millisecond,
			"call %d fired only %s after call %d", i, elapsed, i-1)
	}
}

func TestRunUpdatesExistingStock(t *testing.T) {
	cat := &fakeCatalog{existing: map[string]*catalog.VariantHit{
		"OLD-1": {
			ProductID:       "gid://shopify/Product/1",
			VariantID:       "gid://shopify/ProductVariant/2",
			InventoryItemID: "gid://shopify/InventoryItem/3",
			Price:           decimal.RequireFromString("10.00"),
		},
	}}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "OLD-1", Price: decimal.RequireFromString("10.00"), Quantity: 6},
	}, cat, true)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))

	// 價格相同就不回寫
	assert.Equal(t, []string{"find:OLD-1", "setQty:gid://shopify/InventoryItem/3"}, cat.calls)
	assert.Equal(t, 1, s.Status().Updated)
}

func TestRunUpdatesPriceWhenDiffers(t *testing.T) {
	cat := &fakeCatalog{existing: map[string]*catalog.VariantHit{
		"OLD-2": {
			ProductID:       "gid://shopify/Product/1",
			VariantID:       "gid://shopify/ProductVariant/2",
			InventoryItemID: "gid://shopify/InventoryItem/3",
			Price:           decimal.RequireFromString("10.00"),
		},
	}}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "OLD-2", Price: decimal.RequireFromString("12.00"), Quantity: 6},
	}, cat, true)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))

	assert.Equal(t, []string{
		"find:OLD-2",
		"setQty:gid://shopify/InventoryItem/3",
		"price:gid://shopify/ProductVariant/2",
	}, cat.calls)
}

func TestRunPriceUpdateDisabled(t *testing.T) {
	cat := &fakeCatalog{existing: map[string]*catalog.VariantHit{
		"OLD-3": {
			InventoryItemID: "gid://shopify/InventoryItem/3",
			Price:           decimal.RequireFromString("10.00"),
		},
	}}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "OLD-3", Price: decimal.RequireFromString("12.00"), Quantity: 6},
	}, cat, false)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))
	assert.Equal(t, []string{"find:OLD-3", "setQty:gid://shopify/InventoryItem/3"}, cat.calls)
}

func TestRunSkipsEmptySKU(t *testing.T) {
	cat := &fakeCatalog{}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: ""},
		{Line: 2, SKU: "NEW-1"},
	}, cat, false)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))

	status := s.Status()
	assert.Equal(t, 2, status.Total)
	assert.Equal(t, 1, status.Skipped)
	assert.Equal(t, 1, status.Created)
	assert.Equal(t, []string{"find:NEW-1", "create:NEW-1"}, cat.calls)
}

func TestRunContinuesAfterRowFailure(t *testing.T) {
	cat := &fakeCatalog{findErr: map[string]error{
		"BAD-1": cErr.ExternalRequestError("admin api down"),
	}}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "BAD-1"},
		{Line: 2, SKU: "GOOD-1"},
	}, cat, false)

	require.NoError(t, s.Run(context.Background(), report.Nop{}))

	status := s.Status()
	assert.Equal(t, core.RunStateCompleted, status.State)
	assert.Equal(t, 1, status.Failed)
	assert.Equal(t, 1, status.Created)
	assert.Equal(t, []string{"find:BAD-1", "find:GOOD-1", "create:GOOD-1"}, cat.calls)
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	cat := &fakeCatalog{}
	s := newTestSyncService(nil, cat, false)

	s.mu.Lock()
	s.running = true
	s.status.RunID = "busy"
	s.mu.Unlock()

	err := s.Run(context.Background(), report.Nop{})
	require.Error(t, err)
	appErr, ok := err.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, cErr.SYNC_ALREADY_RUNNING, appErr.ErrorCode())
}

func TestStartRunsInBackground(t *testing.T) {
	cat := &fakeCatalog{}
	s := newTestSyncService([]feed.Row{{Line: 1, SKU: "BG-1"}}, cat, false)

	started, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, started.RunID)
	assert.Equal(t, core.FeedCSV, started.Feed)

	require.Eventually(t, func() bool {
		return s.Status().State == core.RunStateCompleted
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, s.Status().Created)
}

func TestRunReporterReceivesCounts(t *testing.T) {
	cat := &fakeCatalog{}
	s := newTestSyncService([]feed.Row{
		{Line: 1, SKU: "R-1"},
		{Line: 2, SKU: "R-2"},
	}, cat, false)

	var steps []report.Counts
	var done report.Counts
	rep := &recordingReporter{
		step: func(c report.Counts, sku string) { steps = append(steps, c) },
		done: func(c report.Counts, _ time.Duration) { done = c },
	}
	require.NoError(t, s.Run(context.Background(), rep))

	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Total)
	assert.Equal(t, 2, steps[1].Total)
	assert.Equal(t, 2, done.Created)
}

type recordingReporter struct {
	step func(report.Counts, string)
	done func(report.Counts, time.Duration)
}

func (r *recordingReporter) Step(c report.Counts, sku string)      { r.step(c, sku) }
func (r *recordingReporter) Done(c report.Counts, d time.Duration) { r.done(c, d) }
