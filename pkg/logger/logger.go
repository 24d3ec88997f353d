package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/podaac/cnm-response/pkg/environment"
)

// Log is the process wide logger
var Log = logrus.New()

func init() {
	// Log as JSON instead of the default ASCII formatter.
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(environment.GetString("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
