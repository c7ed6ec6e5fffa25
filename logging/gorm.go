package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const slowQueryThreshold = 200 * time.Millisecond

// sqlLogger sends gorm's log to logrus at matching levels: failed statements
// at error, slow ones at warn, and every statement at info in debug mode.
type sqlLogger struct {
	logger *logrus.Logger
	level  gormlogger.LogLevel
	slow   time.Duration
}

// GormLogger routes gorm's SQL log through logger. Every statement is logged
// when debug is set; otherwise only slow queries and errors.
func GormLogger(logger *logrus.Logger, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &sqlLogger{
		logger: logger,
		level:  level,
		slow:   slowQueryThreshold,
	}
}

func (l *sqlLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// entry prefers the request-scoped entry so SQL lines carry the request id.
func (l *sqlLogger) entry(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(entryKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(l.logger)
}

func (l *sqlLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.entry(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *sqlLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.entry(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *sqlLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.entry(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *sqlLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() logrus.Fields {
		sql, rows := fc()
		return logrus.Fields{
			"sql":      sql,
			"rows":     rows,
			"elapsed":  elapsed.Round(time.Microsecond),
			"location": utils.FileWithLineNum(),
		}
	}

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.entry(ctx).WithFields(fields()).WithError(err).Error("sql failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		l.entry(ctx).WithFields(fields()).Warnf("slow sql >= %v", l.slow)
	case l.level >= gormlogger.Info:
		l.entry(ctx).WithFields(fields()).Info("sql")
	}
}
