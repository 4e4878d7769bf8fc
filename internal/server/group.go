package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStarted 表示 Group 已启动, 不能再添加监听器或重复启动.
var ErrStarted = errors.New("server: group already started")

// Config 单个监听器的参数.
type Config struct {
	Addr string
	// ReadHeaderTimeout 只限制请求头; 上传文件的耗时由 ReadTimeout 控制.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	// WriteTimeout 必须覆盖供应商调用耗时, 否则解析成功的响应会被截断.
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

type listener struct {
	name   string
	srv    *http.Server
	ln     net.Listener
	logger *zap.Logger
}

// Group 管理一组 HTTP 监听器 (API 与 /metrics). 任一监听器异常退出时 Wait 返回.
type Group struct {
	logger *zap.Logger

	mu        sync.Mutex
	listeners []*listener
	started   bool
	stopped   bool
	errCh     chan error
}

// NewGroup 创建空的 Group.
func NewGroup(logger *zap.Logger) *Group {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Group{
		logger: logger.With(zap.String("component", "http_server")),
		errCh:  make(chan error, 1),
	}
}

// Add 注册一个监听器, 必须在 Start 之前调用.
func (g *Group) Add(name string, handler http.Handler, cfg Config) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return ErrStarted
	}
	g.listeners = append(g.listeners, &listener{
		name: name,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    cfg.MaxHeaderBytes,
			ErrorLog:          zap.NewStdLog(g.logger.With(zap.String("server", name))),
		},
		logger: g.logger.With(zap.String("server", name)),
	})
	return nil
}

// Start 先绑定所有端口再开始服务. 任一端口绑定失败时关闭已绑定的端口并返回错误.
func (g *Group) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return ErrStarted
	}

	for i, l := range g.listeners {
		ln, err := net.Listen("tcp", l.srv.Addr)
		if err != nil {
			for _, bound := range g.listeners[:i] {
				_ = bound.ln.Close()
				bound.ln = nil
			}
			return fmt.Errorf("%s server: listen on %s: %w", l.name, l.srv.Addr, err)
		}
		l.ln = ln
	}

	g.started = true
	for _, l := range g.listeners {
		l.logger.Info("listening", zap.String("addr", l.ln.Addr().String()))
		go g.serve(l)
	}
	return nil
}

func (g *Group) serve(l *listener) {
	err := l.srv.Serve(l.ln)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	l.logger.Error("server exited", zap.Error(err))
	select {
	case g.errCh <- fmt.Errorf("%s server: %w", l.name, err):
	default:
	}
}

// Wait 阻塞到 ctx 结束 (返回 nil) 或任一监听器异常退出 (返回该错误).
func (g *Group) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case err := <-g.errCh:
		return err
	}
}

// Addr 返回指定监听器的实际地址, 未启动或不存在时返回空串.
func (g *Group) Addr(name string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, l := range g.listeners {
		if l.name == name && l.ln != nil {
			return l.ln.Addr().String()
		}
	}
	return ""
}

// Shutdown 并发关闭所有监听器并等待进行中的请求完成. 可重复调用.
func (g *Group) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	if !g.started || g.stopped {
		g.mu.Unlock()
		return nil
	}
	g.stopped = true
	listeners := g.listeners
	g.mu.Unlock()

	var eg errgroup.Group
	for _, l := range listeners {
		eg.Go(func() error {
			if err := l.srv.Shutdown(ctx); err != nil {
				l.logger.Error("shutdown failed", zap.Error(err))
				return fmt.Errorf("%s server: %w", l.name, err)
			}
			l.logger.Info("stopped")
			return nil
		})
	}
	return eg.Wait()
}
