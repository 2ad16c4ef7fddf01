package config

type Source struct {
	// 來源種類：pos 或 csv
	Mode string `mapstructure:"MODE" json:"mode" yaml:"mode" validate:"required,oneof=pos csv"`
	POS  POS    `mapstructure:"POS" json:"pos" yaml:"pos"`
	CSV  CSV    `mapstructure:"CSV" json:"csv" yaml:"csv"`
}

type POS struct {
	// POS REST API base URL，例如 https://pos.example.com/api
	BaseURL string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	// Bearer token
	Token string `mapstructure:"TOKEN" json:"token" yaml:"token"`
	// 每頁筆數，0 走預設 100
	PageSize int `mapstructure:"PAGE_SIZE" json:"page_size" yaml:"page_size"`
	// 單一請求逾時秒數，0 走預設 30 秒
	TimeoutSec int `mapstructure:"TIMEOUT_SEC" json:"timeout_sec" yaml:"timeout_sec"`
}

type CSV struct {
	// 供應商 CSV 檔路徑
	Path string `mapstructure:"PATH" json:"path" yaml:"path"`
	// 分隔符覆寫（";" 或 ","）。檔首 sep= 提示優先於此設定
	Delimiter string `mapstructure:"DELIMITER" json:"delimiter" yaml:"delimiter"`
}
