package httpserver

import (
	"context"
	"moviehub/movie"
	"moviehub/pkg/config"

	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		s.Config = cfg
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

// WithHealthCheck sets the check run by /healthz, typically a database ping.
func WithHealthCheck(fn func(ctx context.Context) error) Options {
	return func(s *Server) error {
		s.HealthCheck = fn
		return nil
	}
}
