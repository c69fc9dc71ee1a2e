package monitor

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus configured from the log section of the tool config.
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a logger writing at the given level to the given
// output ("console", "file" or "both").
func NewLogger(level, output string) *Logger {
	logger := logrus.New()

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	var writers []io.Writer
	switch output {
	case "file":
		if file := openLogFile(logger); file != nil {
			writers = []io.Writer{file}
		} else {
			writers = []io.Writer{os.Stdout}
		}
	case "both":
		writers = []io.Writer{os.Stdout}
		if file := openLogFile(logger); file != nil {
			writers = append(writers, file)
		}
	default:
		writers = []io.Writer{os.Stdout}
	}

	logger.SetOutput(io.MultiWriter(writers...))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &Logger{Logger: logger}
}

func openLogFile(logger *logrus.Logger) *os.File {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		logger.Warnf("Failed to create logs directory: %v, falling back to console", err)
		return nil
	}
	file, err := os.OpenFile("logs/luno.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		logger.Warnf("Failed to open log file: %v, falling back to console", err)
		return nil
	}
	return file
}
