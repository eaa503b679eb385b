package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold is used when GormConfig leaves SlowThreshold unset
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// GormConfig controls which statements reach the log
type GormConfig struct {
	// Level is parsed with MapGormLogLevel: silent, error, warn or info
	Level string
	// SlowThreshold marks statements as slow; negative disables the check
	SlowThreshold time.Duration
	// LogNotFound also reports gorm.ErrRecordNotFound, which repositories
	// already translate into NOT_FOUND
	LogNotFound bool
}

// GormLogger routes SQL statements issued by the repositories into zap.
// Statements carry the request and account ids found on the context.
type GormLogger struct {
	logger      *zap.Logger
	level       gormlogger.LogLevel
	slow        time.Duration
	logNotFound bool
}

// NewGormLogger creates a gorm logger writing under the "gorm" name
func NewGormLogger(zapLogger *zap.Logger, cfg GormConfig) *GormLogger {
	slow := cfg.SlowThreshold
	if slow == 0 {
		slow = DefaultSlowQueryThreshold
	}
	return &GormLogger{
		logger:      zapLogger.Named("gorm"),
		level:       MapGormLogLevel(cfg.Level),
		slow:        slow,
		logNotFound: cfg.LogNotFound,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	l.printf(gormlogger.Info, zapcore.InfoLevel, msg, data)
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	l.printf(gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	l.printf(gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(enabledAt gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.level < enabledAt {
		return
	}
	if ce := l.logger.Check(lvl, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write()
	}
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	lvl, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}
	ce := l.logger.Check(lvl, msg)
	if ce == nil {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("op", statementKind(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if accountID := GetAccountID(ctx); accountID != "" {
		fields = append(fields, zap.String("account_id", accountID))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	} else if lvl == zapcore.WarnLevel {
		fields = append(fields, zap.Duration("threshold", l.slow))
	}
	ce.Write(fields...)
}

// classify picks the zap level and message for a finished statement.
// ok is false when the statement should not be logged at the configured level.
func (l *GormLogger) classify(elapsed time.Duration, err error) (zapcore.Level, string, bool) {
	switch {
	case err != nil:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && !l.logNotFound {
			return 0, "", false
		}
		return zapcore.ErrorLevel, "SQL Error", l.level >= gormlogger.Error
	case l.slow > 0 && elapsed > l.slow:
		return zapcore.WarnLevel, "Slow SQL", l.level >= gormlogger.Warn
	default:
		return zapcore.DebugLevel, "SQL Query", l.level >= gormlogger.Info
	}
}

// statementKind returns the lower-cased leading keyword of a statement
func statementKind(sql string) string {
	kind, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	return strings.ToLower(kind)
}

// MapGormLogLevel maps the log.sql_level config value to a gorm log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
