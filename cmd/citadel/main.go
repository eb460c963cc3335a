// Package main is the entry point for the voxel citadel diorama.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/voxel-citadel/internal/app"
	"github.com/Faultbox/voxel-citadel/internal/config"
	"github.com/Faultbox/voxel-citadel/internal/engine/debug"
	"github.com/Faultbox/voxel-citadel/internal/engine/renderer"
	"github.com/Faultbox/voxel-citadel/internal/engine/window"
	"github.com/Faultbox/voxel-citadel/internal/logger"
	"github.com/Faultbox/voxel-citadel/internal/metrics"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Citadel of Voxels ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("diorama error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("diorama closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		Samples:       4,
		MaxPixelRatio: float32(cfg.Window.MaxPixelRatio),
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The frame loop stays on the main thread; only the metrics endpoint
	// runs in the group.
	g, gctx := errgroup.WithContext(ctx)
	var rec *metrics.Recorder
	if cfg.Metrics.Addr != "" {
		rec = metrics.New()
		g.Go(func() error {
			if err := rec.Serve(gctx, cfg.Metrics.Addr); err != nil {
				return fmt.Errorf("metrics endpoint: %w", err)
			}
			return nil
		})
	}

	a := app.New(cfg, app.Options{
		// Renderer AFTER window, since the OpenGL context must exist
		NewRenderer: func(host app.Host) (app.Renderer, error) {
			width, height := host.Size()
			return renderer.New(renderer.Config{
				Width:      width,
				Height:     height,
				PixelRatio: host.PixelRatio(),
			})
		},
		Screenshots: debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "screenshots"), "citadel"),
		Metrics:     rec,
	})

	if err := a.Mount(win); err != nil {
		cancel()
		return errors.Join(fmt.Errorf("failed to mount diorama: %w", err), g.Wait())
	}

	runErr := a.Run(gctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	cancel()
	return errors.Join(runErr, g.Wait(), a.Unmount())
}
