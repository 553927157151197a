package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"crop-planner/internal/common/aws"
	"crop-planner/internal/common/camunda"
	"crop-planner/internal/common/config"
	apphttp "crop-planner/internal/common/http"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/observability"
	"crop-planner/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("environment", cfg.App.Environment),
		zap.String("broker", cfg.Camunda.BrokerAddress),
	)

	obs, err := observability.New(cfg.Server.ServiceName)
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}

	ctx := context.Background()

	camundaClient, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	zapLog.Info("zeebe client connected")

	awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}

	reg := checkRegistry(cfg.Registry.Path, taskTypes, zapLog)
	workers := camunda.NewWorkers(camundaClient.GetClient(), zapLog)
	handlers := guardInputs(newHandlers(cfg, awsCfg, log, obs), reg, log)
	for _, taskType := range taskTypes {
		workers.Start(taskType, config.GetWorkerConfig(cfg, taskType), handlers[taskType])
	}
	zapLog.Info("workers registered", zap.Strings("running", workers.Running()))

	server := apphttp.NewServer(
		cfg.Server.Address,
		apphttp.NewHandler(prometheus.DefaultGatherer, camundaClient.HealthCheck, workers.Running),
		log,
	)
	server.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health server", zap.Error(err))
	}
	if err := camundaClient.Close(); err != nil {
		zapLog.Error("error closing zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error flushing telemetry", zap.Error(err))
	}
	zapLog.Info("worker manager stopped")
}

// checkRegistry loads the activity registry and warns about task types it
// does not describe. A missing registry is logged, not fatal, and yields nil.
func checkRegistry(path string, served []string, log *zap.Logger) *registry.ActivityRegistry {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return nil
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.Error(err))
	}
	if missing := reg.Missing(served); len(missing) > 0 {
		log.Warn("task types missing from activity registry", zap.Strings("taskTypes", missing))
	}
	return reg
}
