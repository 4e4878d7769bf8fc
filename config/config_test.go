package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9091, cfg.Server.MetricsPort)
	assert.Equal(t, int64(20<<20), cfg.Server.MaxUploadBytes)
	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Providers.Mindee.Timeout)
	assert.Empty(t, cfg.Server.CORSAllowedOrigins)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Empty(t, cfg.Auth.APIKeys)
	assert.Empty(t, cfg.Auth.JWTSecret)

	assert.Empty(t, cfg.Providers.Mindee.APIKey)
	assert.Equal(t, "https://api.mindee.net", cfg.Providers.Mindee.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Providers.Mindee.Timeout)

	assert.Equal(t, DefaultTelemetryConfig(), cfg.Telemetry)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestDefaultConfig_FreshSlices(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	a.Log.OutputPaths[0] = "stderr"
	assert.Equal(t, "stdout", b.Log.OutputPaths[0])
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Providers.Mindee.APIKey = "k"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "metrics disabled", modify: func(c *Config) { c.Server.MetricsPort = 0 }},
		{name: "http port zero", modify: func(c *Config) { c.Server.HTTPPort = 0 }, wantErr: "server.http_port"},
		{name: "http port too large", modify: func(c *Config) { c.Server.HTTPPort = 70000 }, wantErr: "server.http_port"},
		{name: "port clash", modify: func(c *Config) { c.Server.MetricsPort = c.Server.HTTPPort }, wantErr: "must differ"},
		{name: "upload limit", modify: func(c *Config) { c.Server.MaxUploadBytes = 0 }, wantErr: "max_upload_bytes"},
		{
			name:    "write timeout shorter than provider",
			modify:  func(c *Config) { c.Server.WriteTimeout = 30 * time.Second },
			wantErr: "write_timeout",
		},
		{name: "log level", modify: func(c *Config) { c.Log.Level = "verbose" }, wantErr: "log.level"},
		{name: "log level is case insensitive", modify: func(c *Config) { c.Log.Level = "WARN" }},
		{name: "log format", modify: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "sample rate", modify: func(c *Config) { c.Telemetry.SampleRate = 1.5 }, wantErr: "sample_rate"},
		{name: "cache without redis", modify: func(c *Config) { c.Cache.Enabled = true; c.Redis.Addr = "" }, wantErr: "redis.addr"},
		{name: "issuer without secret", modify: func(c *Config) { c.Auth.JWTIssuer = "idp" }, wantErr: "jwt_secret"},
		{name: "relative base url", modify: func(c *Config) { c.Providers.Mindee.BaseURL = "api.mindee.net" }, wantErr: "base_url"},
		{name: "missing api key", modify: func(c *Config) { c.Providers.Mindee.APIKey = "" }, wantErr: "api_key"},
		{
			name: "api key from database",
			modify: func(c *Config) {
				c.Providers.Mindee.APIKey = ""
				c.Database.Enabled = true
				c.Database.Driver = DriverSQLite
			},
		},
		{
			name:    "unsupported driver",
			modify:  func(c *Config) { c.Database.Enabled = true; c.Database.Driver = "oracle" },
			wantErr: "database.driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Server.HTTPPort = -1
	cfg.Log.Level = "loud"
	cfg.Telemetry.SampleRate = 2

	err := cfg.Validate()

	require.Error(t, err)
	for _, want := range []string{"server.http_port", "log.level", "sample_rate"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "postgres",
			cfg:  DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "ocr", Password: "p@ss/word", Name: "ocrflow", SSLMode: "require"},
			want: "postgres://ocr:p%40ss%2Fword@db:5432/ocrflow?sslmode=require",
		},
		{
			name: "mysql",
			cfg:  DatabaseConfig{Driver: DriverMySQL, Host: "localhost", Port: 3306, User: "user", Password: "pass", Name: "dbname"},
			want: "user:pass@tcp(localhost:3306)/dbname?parseTime=true",
		},
		{
			name: "sqlite",
			cfg:  DatabaseConfig{Driver: DriverSQLite, Name: "/var/lib/ocrflow/credentials.db"},
			want: "/var/lib/ocrflow/credentials.db",
		},
		{name: "unknown", cfg: DatabaseConfig{Driver: "oracle"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
