package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// リクエストごとに1行ログを出す
func RequestLogger(logger *log.Entry) echo.MiddlewareFunc {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				//echoのエラーハンドラでレスポンスを書かせる
				c.Error(err)
			}

			req := c.Request()
			fields := log.Fields{
				"method":      req.Method,
				"path":        c.Path(),
				"uri":         req.RequestURI,
				"status":      c.Response().Status,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_ip":   c.RealIP(),
			}
			if sub, ok := SubjectFromContext(c); ok {
				fields["subject"] = sub
			}

			entry := logger.WithFields(fields)
			switch status := c.Response().Status; {
			case status >= 500:
				entry.WithError(err).Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request handled")
			}
			return nil
		}
	}
}
