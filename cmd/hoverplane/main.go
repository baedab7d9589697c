// Package main is the entry point for the hoverplane viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/config"
	"github.com/Faultbox/hoverplane/internal/engine/window"
	"github.com/Faultbox/hoverplane/internal/logger"
	"github.com/Faultbox/hoverplane/internal/viewer"
)

func main() {
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

	logger.Info("=== hoverplane ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		if errors.Is(err, window.ErrDeviceUnavailable) {
			logger.Error("no render device", zap.Error(err))
		} else {
			logger.Error("failed to create viewer", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := v.Run(ctx)
	stop()

	stats := v.Stats()
	cfg.Surface.Config = v.SurfaceConfig()
	v.Close()

	if runErr != nil {
		logger.Error("frame loop failed", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	logger.Info("viewer closed normally",
		zap.Uint64("ticks", stats.Ticks),
		zap.Uint64("regenerations", stats.Regenerations),
	)
}
