package config

type Sync struct {
	// 每次遠端呼叫之間的固定延遲（毫秒），0 走預設 500ms
	DelayMS int `mapstructure:"DELAY_MS" json:"delay_ms" yaml:"delay_ms"`
	// 單列失敗後的固定退避睡眠（毫秒），0 走預設 2000ms
	BackoffMS int `mapstructure:"BACKOFF_MS" json:"backoff_ms" yaml:"backoff_ms"`
	// 既有商品價格與來源不同時是否回寫價格
	UpdatePrices bool `mapstructure:"UPDATE_PRICES" json:"update_prices" yaml:"update_prices"`
	// serve 模式的排程（cron 表達式，含秒），留空停用
	Schedule string `mapstructure:"SCHEDULE" json:"schedule" yaml:"schedule"`
}
