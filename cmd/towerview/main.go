// Package main is the entry point for the towerview preview.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/app"
	"github.com/Faultbox/towerview/internal/config"
	"github.com/Faultbox/towerview/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== towerview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	scene, err := cfg.SceneFor()
	if err != nil {
		logger.Error("failed to load scene", zap.String("path", cfg.Scene.Path), zap.Error(err))
		os.Exit(1)
	}

	a, err := app.New(cfg, scene)
	if err != nil {
		logger.Error("failed to start preview", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("preview error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("preview closed normally")
}
