package validate

import (
	"testing"

	"skusync/config"
	cErr "skusync/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConf() *config.Configuration {
	conf := &config.Configuration{}
	conf.Shopify.Domain = "example.myshopify.com"
	conf.Shopify.AccessToken = "shpat_x"
	conf.Shopify.APIVersion = "2024-10"
	conf.Shopify.LocationID = "123"
	conf.Source.Mode = "csv"
	conf.Source.CSV.Path = "/data/feed.csv"
	return conf
}

func TestConfigurationValid(t *testing.T) {
	require.NoError(t, Configuration(validConf()))
}

func TestConfigurationMissingShopifyDomain(t *testing.T) {
	conf := validConf()
	conf.Shopify.Domain = ""

	err := Configuration(conf)
	require.Error(t, err)
	appErr, ok := err.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, cErr.INVALID_CONFIG, appErr.ErrorCode())
	// 錯誤訊息需指向環境變數名稱
	assert.Contains(t, appErr.ErrorDesc(), "SHOPIFY__DOMAIN")
}

func TestConfigurationBadSourceMode(t *testing.T) {
	conf := validConf()
	conf.Source.Mode = "ftp"

	err := Configuration(conf)
	require.Error(t, err)
	assert.Contains(t, err.(*cErr.Error).ErrorDesc(), "SOURCE__MODE")
}

func TestConfigurationCSVNeedsPath(t *testing.T) {
	conf := validConf()
	conf.Source.CSV.Path = ""

	err := Configuration(conf)
	require.Error(t, err)
	assert.Contains(t, err.(*cErr.Error).ErrorDesc(), "SOURCE__CSV__PATH")
}

func TestConfigurationLocationIDFormats(t *testing.T) {
	// 純數字與完整 GID 都收，其他一律視為設定錯誤
	conf := validConf()
	conf.Shopify.LocationID = "gid://shopify/Location/456"
	require.NoError(t, Configuration(conf))

	conf.Shopify.LocationID = "main-warehouse"
	err := Configuration(conf)
	require.Error(t, err)
	assert.Contains(t, err.(*cErr.Error).ErrorDesc(), "SHOPIFY__LOCATION_ID")
}

func TestConfigurationPOSNeedsBaseURL(t *testing.T) {
	conf := validConf()
	conf.Source.Mode = "pos"
	conf.Source.POS.BaseURL = ""

	err := Configuration(conf)
	require.Error(t, err)
	assert.Contains(t, err.(*cErr.Error).ErrorDesc(), "SOURCE__POS__BASE_URL")
}
