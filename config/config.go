package config

import "time"

// Config 是 serve 与 parse 命令共用的配置.
type Config struct {
	Server    ServerConfig    `yaml:"server" env:"SERVER"`
	Log       LogConfig       `yaml:"log" env:"LOG"`
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
	Redis     RedisConfig     `yaml:"redis" env:"REDIS"`
	Cache     CacheConfig     `yaml:"cache" env:"CACHE"`
	Database  DatabaseConfig  `yaml:"database" env:"DATABASE"`
	Auth      AuthConfig      `yaml:"auth" env:"AUTH"`
	Providers ProvidersConfig `yaml:"providers" env:"PROVIDERS"`
}

// ServerConfig HTTP 监听参数. WriteTimeout 必须大于供应商超时, Validate 会检查.
type ServerConfig struct {
	HTTPPort        int           `yaml:"http_port" env:"HTTP_PORT"`
	MetricsPort     int           `yaml:"metrics_port" env:"METRICS_PORT"` // 0 表示不开启
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	// 为空时拒绝所有跨域请求
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// RedisConfig 原始响应缓存使用的 Redis.
type RedisConfig struct {
	Addr         string `yaml:"addr" env:"ADDR"`
	Password     string `yaml:"password" env:"PASSWORD"`
	DB           int    `yaml:"db" env:"DB"`
	PoolSize     int    `yaml:"pool_size" env:"POOL_SIZE"`
	MinIdleConns int    `yaml:"min_idle_conns" env:"MIN_IDLE_CONNS"`
}

// CacheConfig 原始响应缓存. 启用时需要 Redis.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"ENABLED"`
	TTL     time.Duration `yaml:"ttl" env:"TTL"`
}

// DatabaseConfig 凭证库. 未启用时只使用 providers 中配置的密钥.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Driver   string `yaml:"driver" env:"DRIVER"` // postgres, mysql, sqlite
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	// sqlite 时为文件路径
	Name    string `yaml:"name" env:"NAME"`
	SSLMode string `yaml:"ssl_mode" env:"SSL_MODE"`

	MaxOpenConns       int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns       int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime    time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" env:"SLOW_QUERY_THRESHOLD"`
}

// AuthConfig 入站鉴权. APIKeys 与 JWTSecret 都为空时不鉴权.
type AuthConfig struct {
	APIKeys     []string `yaml:"api_keys" env:"API_KEYS"`
	JWTSecret   string   `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTIssuer   string   `yaml:"jwt_issuer" env:"JWT_ISSUER"`
	JWTAudience string   `yaml:"jwt_audience" env:"JWT_AUDIENCE"`
}

// ProvidersConfig 各供应商配置. 目前只有 Mindee.
type ProvidersConfig struct {
	Mindee MindeeConfig `yaml:"mindee" env:"MINDEE"`
}

// MindeeConfig Mindee 接入参数. 数据库中有启用的凭证时, 其 APIKey 与 BaseURL 优先.
type MindeeConfig struct {
	APIKey           string        `yaml:"api_key" env:"API_KEY"`
	BaseURL          string        `yaml:"base_url" env:"BASE_URL"`
	Timeout          time.Duration `yaml:"timeout" env:"TIMEOUT"`
	MaxDocumentBytes int64         `yaml:"max_document_bytes" env:"MAX_DOCUMENT_BYTES"`
}

// LogConfig zap 日志参数.
type LogConfig struct {
	Level            string   `yaml:"level" env:"LEVEL"`
	Format           string   `yaml:"format" env:"FORMAT"` // json, console
	OutputPaths      []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	EnableCaller     bool     `yaml:"enable_caller" env:"ENABLE_CALLER"`
	EnableStacktrace bool     `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// TelemetryConfig OTLP 导出参数.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	Insecure     bool    `yaml:"insecure" env:"INSECURE"`
	ServiceName  string  `yaml:"service_name" env:"SERVICE_NAME"`
	SampleRate   float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// DefaultConfig 返回默认配置. 每次调用返回新的切片, 调用方可以修改.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			MetricsPort:     9091,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxUploadBytes:  20 << 20,
		},
		Log: LogConfig{
			Level:        "info",
			Format:       "json",
			OutputPaths:  []string{"stdout"},
			EnableCaller: true,
		},
		Telemetry: DefaultTelemetryConfig(),
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			PoolSize:     10,
			MinIdleConns: 1,
		},
		Cache: CacheConfig{TTL: 24 * time.Hour},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "ocrflow",
			Name:            "ocrflow",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Providers: ProvidersConfig{
			Mindee: MindeeConfig{
				BaseURL:          "https://api.mindee.net",
				Timeout:          60 * time.Second,
				MaxDocumentBytes: 20 << 20,
			},
		},
	}
}

// DefaultTelemetryConfig 默认关闭, 开启后连接本机 collector.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		OTLPEndpoint: "localhost:4317",
		Insecure:     true,
		ServiceName:  "ocrflow",
		SampleRate:   0.1,
	}
}
