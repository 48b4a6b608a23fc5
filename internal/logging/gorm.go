package logging

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends GORM output through logrus. Every statement is logged at debug
// level with its bound parameters, failures at error and slow statements at warn.
type GormLogger struct {
	logger        *logrus.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a GORM logger whose verbosity follows the logrus level
func NewGormLogger(logger *logrus.Logger, slowThreshold time.Duration) *GormLogger {
	level := gormlogger.Warn
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return &GormLogger{
		logger:        logger,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

// LogMode returns a copy of the logger at the given level
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		g.logger.WithContext(ctx).Infof(msg, data...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.logger.WithContext(ctx).Warnf(msg, data...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		g.logger.WithContext(ctx).Errorf(msg, data...)
	}
}

// Trace logs one executed statement
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := g.logger.WithContext(ctx).WithFields(logrus.Fields{
		"sql":        sql,
		"rows":       rows,
		"elapsed_ms": elapsed.Milliseconds(),
	})

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		entry.WithError(err).Error("Query failed")
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		entry.WithField("slow_threshold_ms", g.slowThreshold.Milliseconds()).Warn("Slow query")
	case g.level >= gormlogger.Info:
		entry.Debug("Query")
	}
}
