package logger

import (
	"context"
	"os"

	"github.com/fincore/bankd/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface the application depends on.
type Logger interface {
	// With returns a logger based off the root logger and decorates it
	// with the given context and arguments.
	With(ctx context.Context, args ...interface{}) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Sync() error
}

type zapLogger struct {
	*zap.SugaredLogger
}

// New creates a logger from the application configuration. With a log
// path configured output goes to a size-rotated file, otherwise to stderr.
func New(cfg *config.Config) Logger {
	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var core zapcore.Core
	if cfg.Logger.Path != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Logger.Path,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAgeDays,
		})
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, level)
	} else {
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr), level)
	}

	return &zapLogger{zap.New(core).Sugar()}
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() Logger {
	return &zapLogger{zap.NewNop().Sugar()}
}

func (l *zapLogger) With(_ context.Context, args ...interface{}) Logger {
	if len(args) == 0 {
		return l
	}
	return &zapLogger{l.SugaredLogger.With(args...)}
}
