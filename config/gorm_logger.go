package config

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger sends gorm's SQL trace to slog.
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		slog.InfoContext(ctx, msg, "data", data)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		slog.WarnContext(ctx, msg, "data", data)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		slog.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	// Missing rows are an expected answer for lookups
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		slog.ErrorContext(ctx, "sql failed", "file", file, "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		slog.WarnContext(ctx, "slow sql", "file", file, "elapsed", elapsed, "rows", rows, "sql", sql)
	case l.LogLevel >= gormLogger.Info:
		slog.DebugContext(ctx, "sql", "file", file, "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
