package httpserver

import (
	"moviehub/pkg/metrics"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) RegisterMetricsRoutes() {
	s.Router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// metricsMiddleware records every request against its route pattern.
func (s *Server) metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
		return nil
	}
}
