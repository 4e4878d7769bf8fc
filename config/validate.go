package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// 凭证库驱动
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
	dbDrivers  = []string{DriverPostgres, DriverMySQL, DriverSQLite}
)

// Validate 返回所有问题而不是第一个, 便于一次改完配置.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if !validPort(c.Server.HTTPPort, false) {
		fail("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if !validPort(c.Server.MetricsPort, true) {
		fail("server.metrics_port %d out of range", c.Server.MetricsPort)
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.HTTPPort {
		fail("server.metrics_port must differ from server.http_port")
	}
	if c.Server.MaxUploadBytes <= 0 {
		fail("server.max_upload_bytes must be positive")
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Providers.Mindee.Timeout {
		fail("server.write_timeout (%s) must exceed providers.mindee.timeout (%s)",
			c.Server.WriteTimeout, c.Providers.Mindee.Timeout)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		fail("log.level %q is not one of %v", c.Log.Level, logLevels)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		fail("log.format %q is not one of %v", c.Log.Format, logFormats)
	}

	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		fail("telemetry.sample_rate must be within [0, 1]")
	}

	if c.Cache.Enabled && c.Redis.Addr == "" {
		fail("cache.enabled requires redis.addr")
	}

	if c.Auth.JWTSecret == "" && (c.Auth.JWTIssuer != "" || c.Auth.JWTAudience != "") {
		fail("auth.jwt_issuer and auth.jwt_audience require auth.jwt_secret")
	}

	if u := c.Providers.Mindee.BaseURL; u != "" {
		if parsed, err := url.Parse(u); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			fail("providers.mindee.base_url %q is not an absolute URL", u)
		}
	}

	switch {
	case c.Database.Enabled && !slices.Contains(dbDrivers, c.Database.Driver):
		fail("database.driver %q is not one of %v", c.Database.Driver, dbDrivers)
	case !c.Database.Enabled && c.Providers.Mindee.APIKey == "":
		fail("providers.mindee.api_key is required when the credential database is disabled")
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validPort(p int, allowZero bool) bool {
	if p == 0 {
		return allowZero
	}
	return p > 0 && p <= 65535
}

// DSN 按驱动生成连接串. 用户名与密码会被转义.
func (d *DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	switch d.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   hostPort,
			Path:   "/" + d.Name,
		}
		if d.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
		}
		return u.String()
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = hostPort
		cfg.DBName = d.Name
		cfg.ParseTime = true
		return cfg.FormatDSN()
	case DriverSQLite:
		return d.Name
	default:
		return ""
	}
}
