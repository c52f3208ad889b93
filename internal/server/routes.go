package server

import (
	"marketplace/internal/handler"
	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Customers *handler.CustomerHandler
	Products  *handler.ProductHandler
	Orders    *handler.OrderHandler
}

// JWTSecretが空なら業務APIは認証なし
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, gatherer prometheus.Gatherer) {
	handler.RegisterHealthRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	var mw []echo.MiddlewareFunc
	if jwtSecret != "" {
		mw = append(mw, middleware.AuthJWT(jwtSecret))
	}
	h.Customers.RegisterRoutes(e, mw...)
	h.Products.RegisterRoutes(e, mw...)
	h.Orders.RegisterRoutes(e, mw...)
}
