package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/config"
	"github.com/BaSui01/ocrflow/internal/telemetry"
)

// configFlags 注册 serve 与 parse 共用的配置参数.
func configFlags(fs *flag.FlagSet) (configPath, envFile *string) {
	configPath = fs.String("config", "", "YAML config file")
	envFile = fs.String("env-file", "", ".env file merged into the environment before loading")
	return configPath, envFile
}

// loadConfig 加载并校验配置.
func loadConfig(configPath, envFile string) (*config.Config, error) {
	cfg, err := config.NewLoader().
		WithConfigPath(configPath).
		WithEnvFile(envFile).
		Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, args []string, _, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath, envFile := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(stderr, "serve: %v\n", err)
		return 1
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "serve: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting ocrflow",
		zap.String("version", Version),
		zap.String("git_commit", GitCommit),
		zap.String("build_time", BuildTime),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 追踪不可用不影响解析
	otelProviders, err := telemetry.Init(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("telemetry disabled", zap.Error(err))
	}

	srv := NewServer(cfg, logger)
	code := 0
	if err := srv.Start(ctx); err != nil {
		logger.Error("startup failed", zap.Error(err))
		code = 1
	} else if err := srv.Wait(ctx); err != nil {
		logger.Error("listener stopped unexpectedly", zap.Error(err))
		code = 1
	} else {
		logger.Info("shutdown signal received")
	}

	drain(srv, otelProviders, cfg.Server.ShutdownTimeout, logger)
	logger.Info("ocrflow stopped")
	return code
}

// drain 在同一个超时内先关闭服务再刷出遥测数据.
func drain(srv *Server, otelProviders *telemetry.Providers, timeout time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown incomplete", zap.Error(err))
	}
	if err := otelProviders.Shutdown(ctx); err != nil {
		logger.Warn("telemetry shutdown incomplete", zap.Error(err))
	}
}
