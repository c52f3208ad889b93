package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	JWTSecret string
	Gatherer  prometheus.Gatherer // nilならDefaultGatherer
	Logger    *log.Entry
}

func New(h Handlers, opts Options) *echo.Echo {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "http")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(opts.Logger))

	RegisterRoutes(e, h, opts.JWTSecret, opts.Gatherer)
	return e
}

// Start はctxがキャンセルされるまで待ち受け、その後graceful shutdownする
func Start(ctx context.Context, e *echo.Echo, addr string, logger *log.Entry) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}
