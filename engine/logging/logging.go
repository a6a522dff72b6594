// Package logging builds the zap loggers shared by the engine components.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures NewLogger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Development switches to the human-readable console encoder.
	Development bool
	// File, when set, adds a size-rotated log file sink.
	File string
	// MaxSizeMB is the rotation threshold for File. Zero means 10.
	MaxSizeMB int
	// MaxBackups is how many rotated files to keep. Zero means 3.
	MaxBackups int
}

// NewLogger builds a zap logger writing to stderr and, optionally, to a rotating file.
//
// Parameters:
//   - opts: sink, level and encoder selection
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the level string is not recognized
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	var encCfg zapcore.EncoderConfig
	var consoleEnc zapcore.Encoder
	if opts.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
		consoleEnc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEnc = zapcore.NewJSONEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), level),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    coalesceInt(opts.MaxSizeMB, 10),
			MaxBackups: coalesceInt(opts.MaxBackups, 3),
			Compress:   true,
		}
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(rotator), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if opts.Development {
		logger = logger.WithOptions(zap.Development())
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil. Builders use it so components never
// hold a nil logger.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func coalesceInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
