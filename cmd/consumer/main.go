package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/app"
	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
