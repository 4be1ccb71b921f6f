package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the zap-backed logger.
type Options struct {
	// Verbose enables debug output on the console. Otherwise only warnings and errors are shown.
	Verbose bool
	// File, when set, receives every entry as JSON through a rotating writer.
	File string
	// Console overrides stderr, mainly for tests.
	Console zapcore.WriteSyncer
}

// ZapLogger implements ports.Logger on top of zap.
type ZapLogger struct {
	base *zap.Logger
}

// New builds a ZapLogger. Console output goes to stderr so it never mixes with
// generated artifacts written to stdout.
func New(opts Options) *ZapLogger {
	consoleLevel := zap.NewAtomicLevelAt(zap.WarnLevel)
	if opts.Verbose {
		consoleLevel.SetLevel(zap.DebugLevel)
	}

	console := opts.Console
	if console == nil {
		console = zapcore.Lock(os.Stderr)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), console, consoleLevel),
	}

	if opts.File != "" {
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), fileWriter, zap.DebugLevel))
	}

	return &ZapLogger{base: zap.New(zapcore.NewTee(cores...)).Named("recspec")}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{base: zap.NewNop()}
}

// With returns a child logger that adds fields to every entry.
func (l *ZapLogger) With(fields map[string]interface{}) *ZapLogger {
	return &ZapLogger{base: l.base.With(toZap(fields)...)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug(msg, toZap(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.base.Info(msg, toZap(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn(msg, toZap(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.base.Error(msg, zf...)
}

func toZap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
