package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the service logs.
type Options struct {
	Level   string
	File    string // rotated with lumberjack when set
	MaxSize int    // megabytes before rotation
	MaxAge  int    // days to keep old files
	AppName string
}

func buildLumberjackSyncer(opts Options) *lumberjack.Logger {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 100
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 7
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: 7,
		MaxAge:     maxAge,
	}
}

// New builds a JSON zap logger writing to stdout and, optionally, a rotated file.
// Every entry carries a "service" field with the application name.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	syncers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if opts.File != "" {
		syncers = append(syncers, zapcore.AddSync(buildLumberjackSyncer(opts)))
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		level,
	)

	log := zap.New(core, zap.AddCaller())
	if opts.AppName != "" {
		log = log.With(zap.String("service", opts.AppName))
	}
	return log, nil
}
