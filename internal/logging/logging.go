// Package logging builds the process zap logger from config.Log.
package logging

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Yogendra14/chatbot-ner/internal/config"
)

// New returns a logger writing to w, and also to cfg.File when set. The file
// is always JSON and rotated by size. The returned close func flushes the
// logger and closes the file; call it once on shutdown.
func New(cfg config.Log, w io.Writer) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		consoleCfg := encCfg
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(consoleCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(w), level)}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closeFn := func() error {
		err := logger.Sync()
		if file != nil {
			err = errors.Join(err, file.Close())
		}
		return err
	}
	return logger, closeFn, nil
}
