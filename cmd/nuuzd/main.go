package main

import (
	"context"
	"os"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/app"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/config"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := a.Run(context.Background()); err != nil {
		logger.Error("exited with error", "error", err)
		os.Exit(1)
	}
}
