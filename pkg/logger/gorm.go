package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// GormLogger направляет SQL-логи GORM в общий zerolog-логгер
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger создает логгер для gorm.Config; level: silent, error, warn, info
func NewGormLogger(level string) *GormLogger {
	return &GormLogger{
		level:         ParseGormLevel(level),
		slowThreshold: 200 * time.Millisecond,
	}
}

func ParseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	// ErrRecordNotFound - штатный результат GetByID, не ошибка
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("SQL query failed")
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("Slow SQL query")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		Debug().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("SQL query")
	}
}
