package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sport-inventory/pkg/metrics"
)

// RequestLogger пишет каждый запрос в лог и в метрики prometheus.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unknown"
			}
			status := c.Response().Status
			elapsed := time.Since(start)

			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, path).Observe(elapsed.Seconds())

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Duration("latency", elapsed),
			}
			if status >= 500 {
				logger.Error("HTTP запрос", fields...)
			} else {
				logger.Debug("HTTP запрос", fields...)
			}
			return nil
		}
	}
}
