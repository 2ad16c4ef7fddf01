package config

type Shopify struct {
	// 商店網域，例如 my-shop.myshopify.com
	Domain string `mapstructure:"DOMAIN" json:"domain" yaml:"domain" validate:"required"`
	// Admin API access token（X-Shopify-Access-Token）
	AccessToken string `mapstructure:"ACCESS_TOKEN" json:"access_token" yaml:"access_token" validate:"required"`
	// Admin API 版本，例如 2024-10
	APIVersion string `mapstructure:"API_VERSION" json:"api_version" yaml:"api_version" validate:"required"`
	// 庫存目標地點：純數字 ID 或完整 GID 皆可
	LocationID string `mapstructure:"LOCATION_ID" json:"location_id" yaml:"location_id" validate:"required"`
	// 單一請求逾時秒數，0 走預設 30 秒
	TimeoutSec int `mapstructure:"TIMEOUT_SEC" json:"timeout_sec" yaml:"timeout_sec"`
}
