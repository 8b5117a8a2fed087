package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the JSON logger used by the server and the CLI. Unknown
// levels fall back to info.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
