package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/api/handlers"
	"github.com/BaSui01/ocrflow/api/middleware"
	"github.com/BaSui01/ocrflow/config"
	"github.com/BaSui01/ocrflow/credentials"
	"github.com/BaSui01/ocrflow/internal/cache"
	"github.com/BaSui01/ocrflow/internal/database"
	"github.com/BaSui01/ocrflow/internal/metrics"
	"github.com/BaSui01/ocrflow/internal/server"
	"github.com/BaSui01/ocrflow/internal/telemetry"
)

// =============================================================================
// 🖥️ Server 结构
// =============================================================================

// Server 组装缓存、凭证存储、供应商解析器与两个 HTTP 监听器.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	listeners *server.Group

	collector *metrics.Collector
	cache     *cache.Redis
	db        *database.Pool
	creds     *credentials.DBStore
	resolver  *mindeeResolver
	auth      *middleware.Authenticator

	healthHandler     *handlers.HealthHandler
	documentHandler   *handlers.DocumentHandler
	credentialHandler *handlers.CredentialHandler
}

// probePaths 探针路径不需要鉴权, 访问日志也降为 debug.
var probePaths = []string{"/health", "/healthz", "/ready", "/readyz", "/version"}

// NewServer 创建新的服务器实例
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		auth:   middleware.NewAuthenticator(cfg.Auth, logger),
	}
}

// =============================================================================
// 🚀 启动流程
// =============================================================================

// Start 初始化依赖并启动所有监听器. 依赖初始化失败时返回错误, 已创建的资源由 Shutdown 释放.
func (s *Server) Start(ctx context.Context) error {
	// 1. 指标收集器
	s.collector = metrics.NewCollector("ocrflow", s.logger)

	// 2. 原始响应缓存
	if err := s.initCache(ctx); err != nil {
		return fmt.Errorf("failed to init cache: %w", err)
	}

	// 3. 凭证存储
	store, err := s.initCredentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to init credentials: %w", err)
	}
	if s.db != nil {
		if err := s.collector.RegisterDBStats(s.db.SQLDB(), "credentials"); err != nil {
			s.logger.Warn("failed to register database stats", zap.Error(err))
		}
	}

	// 4. 供应商解析器与 handlers
	s.resolver = newMindeeResolver(store, s.cfg.Providers.Mindee, s.cfg.Cache.TTL, s.logger).
		withRecorder(s.collector)
	if s.cache != nil {
		s.resolver.withCache(cache.NewRawResponseCache(s.cache, s.collector))
	}
	s.initHandlers()

	// 5. API 与 metrics 监听器
	if err := s.startListeners(); err != nil {
		return err
	}

	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
		zap.Bool("cache_enabled", s.cache != nil),
		zap.Bool("credential_db_enabled", s.creds != nil),
		zap.String("auth", s.auth.Mode()),
	)
	return nil
}

// =============================================================================
// 🔧 初始化方法
// =============================================================================

func (s *Server) initCache(ctx context.Context) error {
	m, err := openCache(ctx, s.cfg, s.logger)
	if err != nil {
		return err
	}
	s.cache = m
	return nil
}

func (s *Server) initCredentials(ctx context.Context) (credentials.Store, error) {
	store, pool, creds, err := openCredentialStore(ctx, s.cfg, s.logger)
	s.db, s.creds = pool, creds
	return store, err
}

// openCache 在启用时连接 Redis, 未启用时返回 nil.
func openCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*cache.Redis, error) {
	if !cfg.Cache.Enabled {
		logger.Info("raw response cache disabled")
		return nil, nil
	}
	cacheCfg := cache.DefaultConfig()
	cacheCfg.Addr = cfg.Redis.Addr
	cacheCfg.Password = cfg.Redis.Password
	cacheCfg.DB = cfg.Redis.DB
	if cfg.Redis.PoolSize > 0 {
		cacheCfg.PoolSize = cfg.Redis.PoolSize
	}
	if cfg.Redis.MinIdleConns > 0 {
		cacheCfg.MinIdleConns = cfg.Redis.MinIdleConns
	}
	if cfg.Cache.TTL > 0 {
		cacheCfg.DefaultTTL = cfg.Cache.TTL
	}
	return cache.NewRedis(ctx, cacheCfg, logger)
}

// openCredentialStore 返回 数据库 → 配置文件 的凭证链. 数据库未启用时只使用配置文件, pool 与 creds 为 nil.
func openCredentialStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (credentials.Store, *database.Pool, *credentials.DBStore, error) {
	static := credentials.StaticStore{}
	if key := cfg.Providers.Mindee.APIKey; key != "" {
		static[mindeeProvider] = credentials.Credential{
			Provider: mindeeProvider,
			APIKey:   key,
			BaseURL:  cfg.Providers.Mindee.BaseURL,
		}
	}
	if !cfg.Database.Enabled {
		return static, nil, nil, nil
	}

	dbCfg := cfg.Database
	poolCfg := database.DefaultPoolConfig()
	if dbCfg.MaxOpenConns > 0 {
		poolCfg.MaxOpenConns = dbCfg.MaxOpenConns
	}
	if dbCfg.MaxIdleConns > 0 {
		poolCfg.MaxIdleConns = dbCfg.MaxIdleConns
	}
	if dbCfg.ConnMaxLifetime > 0 {
		poolCfg.ConnMaxLifetime = dbCfg.ConnMaxLifetime
	}

	pool, err := database.Open(ctx, database.Options{
		Driver:        dbCfg.Driver,
		DSN:           dbCfg.DSN(),
		Pool:          poolCfg,
		SlowThreshold: dbCfg.SlowQueryThreshold,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	creds := credentials.NewDBStore(pool.DB(), logger)
	if err := creds.Migrate(ctx); err != nil {
		return nil, pool, nil, err
	}
	return credentials.ChainStore{creds, static}, pool, creds, nil
}

func (s *Server) initHandlers() {
	s.healthHandler = handlers.NewHealthHandler(s.logger)
	s.healthHandler.RegisterCheck(handlers.NewResolverCheck(s.resolver))
	if s.db != nil {
		s.healthHandler.RegisterCheck(handlers.NewPingCheck("database", s.db.Ping))
	}
	if s.cache != nil {
		s.healthHandler.RegisterOptionalCheck(handlers.NewPingCheck("redis", s.cache.Ping))
	}

	s.documentHandler = handlers.NewDocumentHandler(s.resolver, s.cfg.Server.MaxUploadBytes, s.logger)
	if s.creds != nil {
		s.credentialHandler = handlers.NewCredentialHandler(s.creds, s.logger)
	}
}

// =============================================================================
// 🌐 HTTP 服务器
// =============================================================================

// routes 构建 API 路由与中间件链.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.RequestID(),
		middleware.Observe(middleware.ObserveConfig{
			Logger:   s.logger.Named("http"),
			Recorder: s.collector,
			Quiet:    probePaths,
		}),
		middleware.SecureHeaders(),
		middleware.CORS(s.cfg.Server.CORSAllowedOrigins),
		s.auth.Middleware(probePaths...),
	)

	r.Get("/health", s.healthHandler.HandleLive)
	r.Get("/healthz", s.healthHandler.HandleLive)
	r.Get("/ready", s.healthHandler.HandleReady)
	r.Get("/readyz", s.healthHandler.HandleReady)
	r.Get("/version", s.healthHandler.HandleVersion(handlers.VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		Module:    telemetry.BuildVersion(),
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/documents", s.documentHandler.Routes)
		if s.credentialHandler != nil {
			r.Route("/credentials", s.credentialHandler.Routes)
		}
	})
	return r
}

// startListeners 同时绑定 API 与 metrics 端口, 任一失败则都不启动.
func (s *Server) startListeners() error {
	srv := s.cfg.Server
	s.listeners = server.NewGroup(s.logger)

	if err := s.listeners.Add("api", s.routes(), server.Config{
		Addr:              fmt.Sprintf(":%d", srv.HTTPPort),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       srv.ReadTimeout,
		WriteTimeout:      srv.WriteTimeout,
		IdleTimeout:       2 * srv.ReadTimeout,
		MaxHeaderBytes:    1 << 20,
	}); err != nil {
		return err
	}

	if srv.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.collector.Handler())
		if err := s.listeners.Add("metrics", mux, server.Config{
			Addr:              fmt.Sprintf(":%d", srv.MetricsPort),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       srv.ReadTimeout,
			WriteTimeout:      srv.ReadTimeout,
		}); err != nil {
			return err
		}
	}
	return s.listeners.Start()
}

// =============================================================================
// 🛑 关闭流程
// =============================================================================

// Wait 阻塞直到 ctx 结束或任一监听器异常退出.
func (s *Server) Wait(ctx context.Context) error {
	if s.listeners == nil {
		<-ctx.Done()
		return nil
	}
	return s.listeners.Wait(ctx)
}

// Shutdown 优雅关闭: 先停止接收请求, 再释放缓存与数据库连接.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Starting graceful shutdown...")
	var errs []error

	if s.listeners != nil {
		if err := s.listeners.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("Graceful shutdown finished with errors", zap.Error(err))
		return err
	}
	s.logger.Info("Graceful shutdown completed")
	return nil
}
