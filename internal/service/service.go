package service

import (
	"skusync/internal/core"
	"skusync/internal/service/catalog"
	"skusync/internal/service/feed"

	"github.com/google/wire"
)

// 這裡只用一個 provider 實例化 Registry 並同時註冊
var ProviderSet = wire.NewSet(
	feed.NewPOSService,
	feed.NewCSVService,
	catalog.NewShopifyService,
	NewSyncService,
	NewHealthService,
	ProvideRegistryWithServices,
)

// ProvideRegistryWithServices
func ProvideRegistryWithServices(
	pos *feed.POSService,
	csv *feed.CSVService,
) *Registry {
	reg := &Registry{
		feeds: make(map[core.FeedName]feed.Service),
	}
	reg.RegisterFeed(core.FeedPOS, pos)
	reg.RegisterFeed(core.FeedCSV, csv)
	return reg
}
