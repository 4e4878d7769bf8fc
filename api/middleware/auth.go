package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/api/handlers"
	"github.com/BaSui01/ocrflow/config"
	"github.com/BaSui01/ocrflow/credentials"
	"github.com/BaSui01/ocrflow/types"
)

var (
	errNoSubject      = errors.New("token has no subject")
	errUnknownAPIKey  = errors.New("unknown API key")
	errNoCredentials  = errors.New("no credentials presented")
	errBearerDisabled = errors.New("bearer tokens are not accepted")
)

// Authenticator 校验 X-API-Key 或 HS256 签名的 Bearer JWT.
// 调用方身份写入 context, 通过 types.Subject 读取.
type Authenticator struct {
	keys   [][]byte
	secret []byte
	parser *jwt.Parser
	logger *zap.Logger
}

// NewAuthenticator 按配置创建. 两种方式都没配置时 Enabled 返回 false.
func NewAuthenticator(cfg config.AuthConfig, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Authenticator{logger: logger.With(zap.String("component", "auth"))}
	for _, k := range cfg.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			a.keys = append(a.keys, []byte(k))
		}
	}
	if cfg.JWTSecret != "" {
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		}
		if cfg.JWTIssuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
		}
		if cfg.JWTAudience != "" {
			opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
		}
		a.parser = jwt.NewParser(opts...)
		a.secret = []byte(cfg.JWTSecret)
	}
	return a
}

// Enabled 报告是否配置了任何鉴权方式.
func (a *Authenticator) Enabled() bool {
	return len(a.keys) > 0 || a.parser != nil
}

// Mode 用于启动日志, 例如 "api_key(2)+jwt".
func (a *Authenticator) Mode() string {
	var modes []string
	if len(a.keys) > 0 {
		modes = append(modes, fmt.Sprintf("api_key(%d)", len(a.keys)))
	}
	if a.parser != nil {
		modes = append(modes, "jwt")
	}
	if len(modes) == 0 {
		return "none"
	}
	return strings.Join(modes, "+")
}

// Middleware 返回鉴权中间件. public 中的路径 (探针等) 不需要凭证.
func (a *Authenticator) Middleware(public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		if !a.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if open[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			subject, err := a.authenticate(r)
			if err != nil {
				a.logger.Debug("authentication failed", zap.String("path", r.URL.Path), zap.Error(err))
				handlers.WriteError(w, r, types.NewError(types.ErrUnauthorized, publicReason(err)), nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(types.WithSubject(r.Context(), subject)))
		})
	}
}

// authenticate X-API-Key 优先. 两个头都给出时不会回退到 JWT.
func (a *Authenticator) authenticate(r *http.Request) (string, error) {
	if key := r.Header.Get("X-API-Key"); key != "" && len(a.keys) > 0 {
		if !a.knownKey(key) {
			return "", errUnknownAPIKey
		}
		return "apikey:" + credentials.Mask(key), nil
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", errNoCredentials
	}
	if a.parser == nil {
		return "", errBearerDisabled
	}
	return a.verify(token)
}

// knownKey 与所有已配置的 key 逐一做常量时间比较.
func (a *Authenticator) knownKey(key string) bool {
	got := []byte(key)
	match := 0
	for _, k := range a.keys {
		match |= subtle.ConstantTimeCompare(k, got)
	}
	return match == 1
}

func (a *Authenticator) verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errNoSubject
	}
	return claims.Subject, nil
}

// publicReason 返回给客户端的原因, 不暴露 JWT 校验细节.
func publicReason(err error) string {
	switch {
	case errors.Is(err, errNoCredentials), errors.Is(err, errBearerDisabled):
		return "missing credentials"
	case errors.Is(err, errUnknownAPIKey):
		return "invalid API key"
	default:
		return "invalid or expired token"
	}
}
