package config

type Log struct {
	// debug / info / warn / error / dpanic / panic / fatal
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// json（服務）或 console（互動式 CLI）
	Format string `mapstructure:"FORMAT" json:"format" yaml:"format"`
}
