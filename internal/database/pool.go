package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 支持的驱动
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// sqliteBusyTimeout 写锁等待时间. 凭证轮换与读取可能同时发生.
const sqliteBusyTimeout = "_pragma=busy_timeout(5000)"

// ErrClosed 表示连接已关闭.
var ErrClosed = errors.New("database: pool closed")

// PoolConfig 连接池参数.
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig 凭证表很小, 只在每次解析时读一行, 不需要大连接池.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxIdleConns:    2,
		MaxOpenConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// Options 打开数据库所需的参数.
type Options struct {
	Driver string
	DSN    string
	Pool   PoolConfig
	// SlowThreshold 超过该耗时的查询以 warn 级别记录, 0 表示不记录慢查询.
	SlowThreshold time.Duration
	Logger        *zap.Logger
}

// Pool 持有凭证库的 GORM 连接与底层 sql.DB.
type Pool struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	driver string
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// Open 打开数据库, 应用连接池参数并做一次 Ping. 连不上时立即返回错误.
func Open(ctx context.Context, opts Options) (*Pool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dialector, err := Dialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGormLogger(logger, opts.SlowThreshold),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}

	p, err := New(db, opts.Driver, opts.Pool, logger)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("ping %s database: %w", opts.Driver, err)
	}
	return p, nil
}

// New 包装已打开的 GORM 连接. sqlite 只允许一个写连接, 所以连接数固定为 1.
func New(db *gorm.DB, driver string, cfg PoolConfig, logger *zap.Logger) (*Pool, error) {
	if db == nil {
		return nil, errors.New("database: nil gorm.DB")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}

	if driver == DriverSQLite {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger = logger.With(zap.String("component", "database"), zap.String("driver", driver))
	logger.Info("credential database opened",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns))

	return &Pool{db: db, sqlDB: sqlDB, driver: driver, logger: logger}, nil
}

// DB 返回 GORM 实例.
func (p *Pool) DB() *gorm.DB { return p.db }

// SQLDB 返回底层连接, 用于导出连接池指标.
func (p *Pool) SQLDB() *sql.DB { return p.sqlDB }

// Driver 返回驱动名.
func (p *Pool) Driver() string { return p.driver }

// Ping 用于就绪检查.
func (p *Pool) Ping(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	return p.sqlDB.PingContext(ctx)
}

// Close 可重复调用.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.logger.Info("closing credential database")
	return p.sqlDB.Close()
}

// Dialector 按驱动名返回 GORM 方言. sqlite 使用纯 Go 实现, 不依赖 cgo.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q (supported: %s, %s, %s)",
			driver, DriverPostgres, DriverMySQL, DriverSQLite)
	}
}

// sqliteDSN 在未指定 busy_timeout 时补上默认值.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqliteBusyTimeout
}
