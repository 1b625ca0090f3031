package logger

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// L returns the process-wide logger, building it on first use.
func L() *zap.Logger {
	once.Do(func() {
		var cfg zap.Config
		if os.Getenv("APP_ENV") == "production" {
			cfg = zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		instance, err = cfg.Build()
		if err != nil {
			log.Fatalf("logger init failed: %v", err)
		}
	})
	return instance
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if instance != nil {
		_ = instance.Sync()
	}
}
