package pkg

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. InitLogger must run before anything logs;
// tests that skip it get a no-op logger.
var Log = zap.NewNop()

func InitLogger(development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return err
	}
	Log = log
	return nil
}

func SyncLogger() {
	_ = Log.Sync()
}
