package log

import (
	"fmt"
	"os"

	"skusync/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	// 1) 解析最小輸出層級（作為全域門檻）
	var lvl zapcore.Level
	switch conf.Log.Level {
	case "debug":
		lvl = zap.DebugLevel
	case "info":
		lvl = zap.InfoLevel
	case "warn":
		lvl = zap.WarnLevel
	case "error":
		lvl = zap.ErrorLevel
	case "dpanic":
		lvl = zap.DPanicLevel
	case "panic":
		lvl = zap.PanicLevel
	case "fatal":
		lvl = zap.FatalLevel
	default:
		lvl = zap.InfoLevel
	}

	atomic := zap.NewAtomicLevelAt(lvl)

	// 2) Encoder 設定。console 供互動式 sync 指令使用，
	//    避免 JSON 淹沒進度列；其餘一律 JSON
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if conf.Log.Format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	// 3) 分流到 stdout / stderr（同時受全域門檻控制）。
	//    互動模式 info 以下也走 stderr，stdout 留給進度輸出
	stdoutWriter := zapcore.AddSync(os.Stdout)
	stderrWriter := zapcore.AddSync(os.Stderr)
	if conf.Log.Format == "console" {
		stdoutWriter = stderrWriter
	}

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, stdoutWriter, stdoutLevel),
		zapcore.NewCore(encoder, stderrWriter, stderrLevel),
	)

	// 4) Options：顯示 caller；stacktrace 只在 Error+ 時出現
	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}

	logger := zap.New(core, opts...)
	logger.Debug(fmt.Sprintf("zap logger set level: %s", conf.Log.Level))

	return logger, nil
}
