package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger 把 GORM 日志转发到 zap. 级别由 zap 决定, LogMode 只影响 GORM 自身的过滤.
type gormLogger struct {
	logger *zap.Logger
	slow   time.Duration
	level  gormlogger.LogLevel
}

func newGormLogger(logger *zap.Logger, slow time.Duration) gormlogger.Interface {
	return &gormLogger{
		logger: logger.WithOptions(zap.AddCallerSkip(3)).With(zap.String("component", "gorm")),
		slow:   slow,
		level:  gormlogger.Warn,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace 记录失败与慢查询. 凭证不存在 (ErrRecordNotFound) 属于正常回退, 不记录.
// SQL 里的密钥是绑定参数, fc 返回的语句已内插参数, 所以只在 debug 级别输出完整语句.
func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		_, rows := fc()
		l.logger.Error("query failed", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.Error(err))
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		_, rows := fc()
		l.logger.Warn("slow query", zap.Duration("elapsed", elapsed), zap.Duration("threshold", l.slow), zap.Int64("rows", rows))
	case l.logger.Core().Enabled(zapcore.DebugLevel):
		sql, rows := fc()
		l.logger.Debug("query", zap.String("sql", sql), zap.Duration("elapsed", elapsed), zap.Int64("rows", rows))
	}
}
