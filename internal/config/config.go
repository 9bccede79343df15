package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// Init configures the process-wide logger from the environment.
// LOG_FORMAT=json switches to the JSON formatter, LOG_LEVEL accepts
// any logrus level name and defaults to info.
func Init() {
	if os.Getenv("LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// Getenv returns the value of the environment variable or fallback
// when it is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
