package httpserver

import (
	"context"
	"fmt"
	"moviehub/errs"
	"moviehub/movie"
	"moviehub/pkg/config"
	"moviehub/pkg/logger"
	"moviehub/pkg/sentry"
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	Config *config.Config
	Logger *zap.SugaredLogger

	MovieService movie.Service

	HealthCheck func(ctx context.Context) error
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router: echo.New(),
		Config: config.Empty,
		Logger: logger.NOOPLogger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	s.Addr = fmt.Sprintf(":%d", s.Config.Port)
	if s.Config.Port == 0 {
		s.Addr = ":8080"
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.Router.JSONSerializer = JSONSerializer{}
	s.Router.Validator = NewValidator()

	s.RegisterGlobalMiddlewares()

	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	// static paths above take precedence over "/:slug" in echo's router
	s.RegisterMovieRoutes(s.Router.Group(""))

	return &s, nil
}

func (s *Server) RegisterGlobalMiddlewares() {
	// "/category/netflix/" routes like "/category/netflix"
	s.Router.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/swagger/")
		},
	}))
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(s.metricsMiddleware)

	// CORS, a single origin
	if origin := strings.TrimSpace(s.Config.AllowOrigin); origin != "" {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{origin},
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// customHTTPErrorHandler handles errors that escaped a handler. Bodies are
// plain text and never carry internal detail.
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = http.StatusText(code)
		if m, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
			message = m
		}
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		s.logError(c, err)
	}

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, message)
	}
	if err != nil {
		s.Logger.Errorw("write error response", "error", err, "request_id", s.requestID(c))
	}
}

// handleError logs err with the request id, reports it to Sentry and
// answers with the generic message only.
func (s *Server) handleError(c echo.Context, err error, status int, message string) error {
	s.logError(c, err)
	return c.String(status, message)
}

func (s *Server) logError(c echo.Context, err error) {
	s.Logger.Errorw(
		err.Error(),
		"request_id", s.requestID(c),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	)
	sentry.WithContext(c).Error(err)
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
