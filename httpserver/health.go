package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthz", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and the catalog store answers
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.HealthCheck != nil {
		if err := s.HealthCheck(c.Request().Context()); err != nil {
			s.Logger.Warnw("health check failed", "error", err, "request_id", s.requestID(c))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  http.StatusText(http.StatusServiceUnavailable),
				"message": "Catalog store is unreachable",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  http.StatusText(http.StatusOK),
		"message": "Service is up and running",
	})
}
