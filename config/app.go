package config

type App struct {
	// 當前開發環境
	Env string `mapstructure:"ENV" json:"env" yaml:"env"`
	// 服務端口（serve 模式）
	Port uint32 `mapstructure:"PORT" json:"port" yaml:"port"`
	// 服務名稱
	Name string `mapstructure:"NAME" json:"name" yaml:"name"`
	// 服務版本
	Version string `mapstructure:"VERSION" json:"version" yaml:"version"`
	// serve 模式下保護 /sync 路由的靜態 API Key，留空表示不驗證
	APIKey string `mapstructure:"API_KEY" json:"api_key" yaml:"api_key"`
}
