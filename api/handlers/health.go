package handlers

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/ocrflow/types"
)

// 服务整体状态
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// 单项检查结果
const (
	checkPass = "pass"
	checkWarn = "warn"
	checkFail = "fail"
)

// readyTimeout 所有就绪检查共享的超时.
const readyTimeout = 5 * time.Second

// HealthCheck 是一个就绪依赖, 例如凭证库或原始响应缓存.
type HealthCheck interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthStatus 是存活与就绪探针的响应体.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult 单个依赖的检查结果. 非关键依赖失败记为 warn.
type CheckResult struct {
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Message  string `json:"message,omitempty"`
	Latency  string `json:"latency,omitempty"`
}

// VersionInfo 是 /version 的响应数据.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	Module    string `json:"module,omitempty"`
	GoVersion string `json:"go_version"`
}

type registeredCheck struct {
	check    HealthCheck
	critical bool
}

// HealthHandler 提供存活, 就绪与版本探针.
type HealthHandler struct {
	logger *zap.Logger

	mu     sync.RWMutex
	checks []registeredCheck
}

// NewHealthHandler 创建探针处理器.
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{logger: logger.With(zap.String("component", "health"))}
}

// RegisterCheck 注册关键依赖, 失败时 /ready 返回 503.
func (h *HealthHandler) RegisterCheck(check HealthCheck) {
	h.register(check, true)
}

// RegisterOptionalCheck 注册非关键依赖. 失败时状态为 degraded, 仍返回 200:
// 缓存不可用时请求直接发往供应商.
func (h *HealthHandler) RegisterOptionalCheck(check HealthCheck) {
	h.register(check, false)
}

func (h *HealthHandler) register(check HealthCheck, critical bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, registeredCheck{check: check, critical: critical})
}

// HandleLive 存活探针, 不检查任何依赖.
// @Summary 存活探针
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
// @Router /healthz [get]
func (h *HealthHandler) HandleLive(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, HealthStatus{Status: statusHealthy, Timestamp: time.Now()})
}

// HandleReady 并发运行所有检查并汇总.
// @Summary 就绪探针
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /ready [get]
// @Router /readyz [get]
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	h.mu.RLock()
	checks := slices.Clone(h.checks)
	h.mu.RUnlock()

	results := make([]CheckResult, len(checks))
	var g errgroup.Group
	for i, rc := range checks {
		g.Go(func() error {
			results[i] = h.run(ctx, rc)
			return nil
		})
	}
	_ = g.Wait()

	status := HealthStatus{
		Status:    statusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]CheckResult, len(checks)),
	}
	for i, rc := range checks {
		res := results[i]
		status.Checks[rc.check.Name()] = res
		switch {
		case res.Status == checkFail:
			status.Status = statusUnhealthy
		case res.Status == checkWarn && status.Status == statusHealthy:
			status.Status = statusDegraded
		}
	}

	code := http.StatusOK
	if status.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, status)
}

func (h *HealthHandler) run(ctx context.Context, rc registeredCheck) CheckResult {
	start := time.Now()
	err := rc.check.Check(ctx)
	latency := time.Since(start)

	res := CheckResult{Status: checkPass, Critical: rc.critical, Latency: latency.String()}
	if err == nil {
		return res
	}
	res.Status = checkFail
	if !rc.critical {
		res.Status = checkWarn
	}
	res.Message = checkMessage(err)
	h.logger.Warn("readiness check failed",
		zap.String("check", rc.check.Name()),
		zap.Bool("critical", rc.critical),
		zap.Duration("latency", latency),
		zap.Error(err))
	return res
}

// checkMessage 对 types.Error 只返回其对外消息, 不带内部原因.
func checkMessage(err error) string {
	if apiErr, ok := types.AsError(err); ok {
		return string(apiErr.Code) + ": " + apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	return err.Error()
}

// HandleVersion 返回构建信息.
// @Summary 版本信息
// @Tags health
// @Produce json
// @Success 200 {object} Response{data=VersionInfo}
// @Router /version [get]
func (h *HealthHandler) HandleVersion(info VersionInfo) http.HandlerFunc {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		WriteSuccess(w, r, info)
	}
}

// funcCheck 把一个函数包装成 HealthCheck.
type funcCheck struct {
	name string
	fn   func(ctx context.Context) error
}

func (c funcCheck) Name() string                    { return c.name }
func (c funcCheck) Check(ctx context.Context) error { return c.fn(ctx) }

// NewPingCheck 用连接的 Ping 方法做检查, 例如 Redis 或数据库.
func NewPingCheck(name string, ping func(ctx context.Context) error) HealthCheck {
	return funcCheck{name: name, fn: ping}
}

// NewResolverCheck 检查供应商凭证能否解析. 未配置密钥时文档接口全部返回 503,
// 所以这是关键检查.
func NewResolverCheck(resolver ProviderResolver) HealthCheck {
	return funcCheck{
		name: "credentials:" + resolver.Name(),
		fn: func(ctx context.Context) error {
			_, err := resolver.Resolve(ctx)
			return err
		},
	}
}
