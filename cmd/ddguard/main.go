// cmd/ddguard/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ddguard/relay/internal/config"
	"github.com/ddguard/relay/internal/logging"
	"github.com/ddguard/relay/internal/pipeline"
	"github.com/ddguard/relay/internal/poller"
	"github.com/ddguard/relay/internal/writer"
)

const (
	version       = "0.4.1"
	serviceName   = "ddguard"
	shutdownGrace = 5 * time.Second
)

func main() {
	cfgPath := config.DefaultPath
	if len(os.Args) > 2 {
		log.Fatal("usage: ddguard [config.yaml]")
	}
	if len(os.Args) == 2 {
		cfgPath = os.Args[1]
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting DD-Guard daemon",
		zap.String("version", version),
		zap.String("config", cfgPath),
	)

	// --------------------
	// Build acquisition + relay
	// --------------------

	p, err := poller.Build(cfg, logger)
	if err != nil {
		logger.Fatal("poller build failed", zap.Error(err))
	}

	sinks, err := writer.BuildSinks(cfg, logger)
	if err != nil {
		logger.Fatal("sink build failed", zap.Error(err))
	}
	relay := writer.New(sinks, logger)
	logger.Info("relay ready", zap.String("sinks", strings.Join(relay.Sinks(), ",")))

	handler := &pipeline.Handler{
		Thresholds: cfg.Thresholds(),
		Relay:      relay,
		Log:        logger,
	}

	runner, err := poller.NewRunner(p, handler, poller.Interval(cfg), logger)
	if err != nil {
		logger.Fatal("runner build failed", zap.Error(err))
	}

	// --------------------
	// Run until SIGINT / SIGTERM
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		runner.Run(ctx)
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")

	deadline := time.Now().Add(shutdownGrace)
	select {
	case <-stopped:
		if !runner.Wait(time.Until(deadline)) {
			logger.Warn("in-flight cycle did not finish before shutdown")
		}
	case <-time.After(shutdownGrace):
		logger.Warn("scheduler did not stop before shutdown")
	}

	if err := relay.Close(); err != nil {
		logger.Warn("sink shutdown incomplete", zap.Error(err))
	}
	logger.Info("Exiting DD-Guard daemon")
}
