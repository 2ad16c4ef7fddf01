package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	Shopify   Shopify         `mapstructure:"SHOPIFY" json:"shopify" yaml:"shopify"`
	Source    Source          `mapstructure:"SOURCE" json:"source" yaml:"source"`
	Sync      Sync            `mapstructure:"SYNC" json:"sync" yaml:"sync"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
}
