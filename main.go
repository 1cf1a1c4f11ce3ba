package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"heartrisk/config"
	riskhttp "heartrisk/http"
	"heartrisk/logger"
	"heartrisk/ml"
)

func main() {
	// 1. Load config
	cfg := config.Default()
	configPath, found := config.Find()
	if found {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log, level, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 2. Load artifacts; nothing is served without them
	server, err := newServer(cfg, log)
	if err != nil {
		if errors.Is(err, ml.ErrArtifactsMissing) {
			fmt.Fprintln(os.Stderr, err)
		}
		log.Fatal("setup failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if found {
		err := config.Watch(ctx, configPath, log, func(c *config.Config) {
			level.SetLevel(logger.ParseLevel(c.Log.Level))
			log.Info("log level updated", zap.String("level", level.String()))
		})
		if err != nil {
			log.Warn("config watch disabled", zap.Error(err))
		}
	}

	// 3. Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := server.Stop(); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("exiting")
}

// newServer loads the artifacts and builds the server around them. It returns
// ml.ErrArtifactsMissing before any handler exists when either file is absent.
func newServer(cfg *config.Config, log *zap.Logger) (*riskhttp.Server, error) {
	artifacts, err := ml.LoadArtifacts(ml.ArtifactConfig{
		ModelType:  cfg.Artifacts.ModelType,
		ModelPath:  cfg.ModelPath(),
		ScalerType: cfg.Artifacts.ScalerType,
		ScalerPath: cfg.ScalerPath(),
	})
	if err != nil {
		return nil, err
	}
	pipeline, err := ml.NewPipeline(artifacts)
	if err != nil {
		return nil, err
	}
	log.Info("artifacts loaded",
		zap.String("model", cfg.ModelPath()),
		zap.String("model_type", cfg.Artifacts.ModelType),
		zap.String("scaler", cfg.ScalerPath()),
		zap.String("scaler_type", cfg.Artifacts.ScalerType),
	)

	serverConfig := riskhttp.DefaultServerConfig()
	serverConfig.Port = cfg.Http.Port
	serverConfig.Timeout = cfg.Http.Timeout
	return riskhttp.NewServer(serverConfig, pipeline, log)
}
