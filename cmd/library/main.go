package main

import (
	"os"
	"path/filepath"

	"github.com/project/lms/config"
	log "github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("read configuration: %s", err)
	}

	logger, err := NewFileLogger(cfg.Log.File)
	if err != nil {
		log.Fatalf("open log output: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	if err = newRootCommand(cfg, logger).Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		_ = logger.Sync()
		log.Fatalf("%s", err)
	}
}

// NewFileLogger builds a JSON logger appending to logFile. An empty path
// logs to stdout.
func NewFileLogger(logFile string) (*zap.Logger, error) {
	out := zapcore.Lock(os.Stdout)
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = zapcore.AddSync(file)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), out, zap.InfoLevel)
	return zap.New(core).With(zap.String("service", "library")), nil
}
