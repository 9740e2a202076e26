// Package main is the headless bounding-box tracker. It prints one JSON
// line per tracked rectangle to stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-bbox/internal/app"
	"github.com/Faultbox/midgard-bbox/internal/config"
	"github.com/Faultbox/midgard-bbox/internal/logger"
	"github.com/Faultbox/midgard-bbox/internal/tracker"
)

// record is one output line.
type record struct {
	Frame int `json:"frame"`
	tracker.Result
}

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

	if err := run(cfg); err != nil {
		logger.Error("tracking failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	a, err := app.New(cfg, logger.Named("app"), app.ConfigSearchPath())
	if err != nil {
		return err
	}
	defer a.Close()

	// Headless runs are deterministic: every frame advances the scene by
	// the same step regardless of wall time.
	if cfg.Tracking.FPS > 0 {
		a.Loop.FixedStep = time.Second / time.Duration(cfg.Tracking.FPS)
		a.Loop.FPS = 0
	}

	enc := json.NewEncoder(os.Stdout)
	var writeErr error
	a.Tracker.Subscribe(func(r tracker.Result) {
		if writeErr != nil {
			return
		}
		writeErr = enc.Encode(record{Frame: a.Loop.Frame(), Result: r})
	})
	a.Loop.OnFrameEnd(func(int) error {
		if writeErr != nil {
			return fmt.Errorf("writing results: %w", writeErr)
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Loop.Run(ctx, cfg.Tracking.Frames); err != nil {
		return err
	}

	logger.Info("tracking finished", zap.Int("frames", a.Loop.Frame()))
	return nil
}
