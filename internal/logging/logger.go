// Package logging configures the shared logrus logger with optional
// rotating file output.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger writing to stdout. When logFile is non-empty the same
// stream is also appended to a size-rotated file.
func New(logFile string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if logFile == "" {
		logger.SetOutput(os.Stdout)
		return logger
	}

	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).Warn("cannot create log directory, logging to stdout only")
			logger.SetOutput(os.Stdout)
			return logger
		}
	}

	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, rotated))
	return logger
}
