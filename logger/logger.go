package logger

import (
	"check_isam/config"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a logger writing to stderr, and additionally to a rotating
// file when cfg.File is set. Stdout is left to the plugin output.
func NewLogger(cfg config.Log, verbose bool) *logrus.Logger {

	log := logrus.New()

	var out io.Writer = os.Stderr

	if cfg.File != "" {

		logFile := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}

		out = io.MultiWriter(os.Stderr, logFile)
	}

	log.SetOutput(out)

	log.SetLevel(parseLevel(cfg.Level, verbose))

	log.SetFormatter(&logrus.TextFormatter{

		FullTimestamp: true,
	})

	return log
}

func parseLevel(level string, verbose bool) logrus.Level {

	if verbose {

		return logrus.DebugLevel
	}

	lvl, err := logrus.ParseLevel(level)

	if err != nil {

		return logrus.WarnLevel
	}

	return lvl
}
