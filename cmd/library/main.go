package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/app"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/config"
)

// @title Library API
// @version 1.0
// @description Catalog, borrowing and user administration for a library.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
