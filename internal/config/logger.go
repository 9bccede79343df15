package config

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// WithContext returns a logger entry carrying the chi request id when
// one is present in the context.
func WithContext(ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logger
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return logger.WithField("request_id", reqID)
	}
	return logger
}

// Logger exposes the shared logger for call sites without a context.
func Logger() *logrus.Logger {
	return logger
}
