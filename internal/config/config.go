package config

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the process-wide zap logger, set by InitLogger.
var Logger *zap.Logger

// InitLogger builds the process logger; production encoding when APP_ENV=production.
func InitLogger(env string) {
	var err error
	if env == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	Logger.Info("Zap logger initialized", zap.String("env", env))
}
