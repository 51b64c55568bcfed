package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

const (
	logEnvKey     = "LOG_ENV"
	logFileKey    = "LOG_FILE"
	defaultLogEnv = "dev"
)

var logger *zap.Logger

func init() {
	env := os.Getenv(logEnvKey)
	if env == "" {
		env = defaultLogEnv
	}

	var err error
	switch env {
	case "dev":
		logger, err = build(zap.NewDevelopmentConfig())
	case "prod":
		logger, err = build(zap.NewProductionConfig())
	case "nop":
		logger = zap.NewNop()
	}

	if err != nil || logger == nil {
		log.Fatal("logger init ", env, err)
	}
}

// build keeps the console dialog readable by sending logs to LOG_FILE when set.
func build(cfg zap.Config) (*zap.Logger, error) {
	if path := os.Getenv(logFileKey); path != "" {
		cfg.OutputPaths = []string{path}
	}
	return cfg.Build()
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

func Sync() {
	_ = logger.Sync()
}
