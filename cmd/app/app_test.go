package main

import (
	"testing"

	"skusync/config"
	cErr "skusync/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 設定缺必填值時 Run 要直接失敗，不能讓 cron/HTTP 先起來再等排程爆炸
func TestAppRunFailsFastOnInvalidConfiguration(t *testing.T) {
	conf := &config.Configuration{}
	conf.App.Name = "skusync"
	conf.Source.Mode = "csv"
	conf.Source.CSV.Path = "/tmp/feed.csv"
	// 故意缺 SHOPIFY__DOMAIN / TOKEN / LOCATION_ID

	a := &App{conf: conf, logger: zap.NewNop()}
	err := a.Run()

	require.Error(t, err)
	appErr := cErr.From(err)
	assert.Equal(t, cErr.INVALID_CONFIG, appErr.ErrorCode())
	assert.Contains(t, appErr.ErrorDesc(), "SHOPIFY__DOMAIN")
}
