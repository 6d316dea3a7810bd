// @title Moviehub Catalog API
// @version 1.0
// @description Read-only movie catalog: paginated listing, category listing and slug lookup.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log/slog"
	"moviehub/httpserver"
	"moviehub/mongodb"
	"moviehub/movie"
	"moviehub/pkg/config"
	"moviehub/pkg/logger"
	"moviehub/pkg/sentry"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsLocal())
	if err != nil {
		slog.Error("Cannot init logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("Cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbName := cfg.Mongo.Database
	if dbName == "" {
		if dbName, err = mongodb.DatabaseFromURI(cfg.Mongo.URI); err != nil {
			log.Fatalw("Cannot read database from MONGO_URI", "error", err)
		}
	}

	client, err := mongodb.NewClient(ctx, mongodb.Options{
		URI:     cfg.Mongo.URI,
		Timeout: cfg.Mongo.Timeout,
	})
	if err != nil {
		sentry.Fatal(err)
		log.Fatalw("Cannot connect to mongodb", "error", err)
	}
	log.Infow("Connected to the database", "db", dbName, "collection", cfg.Mongo.Collection)

	col := client.Database(dbName).Collection(cfg.Mongo.Collection)
	movieService := movie.NewUsecase(mongodb.NewMovieRepository(col))

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movieService),
		httpserver.WithHealthCheck(func(ctx context.Context) error {
			return mongodb.Ping(ctx, client)
		}),
	)
	if err != nil {
		log.Fatalw("Cannot create server", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started!", "addr", server.Addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("server shutdown failed", "error", err)
		}
	}

	if err := mongodb.Disconnect(context.Background(), client, shutdownTimeout); err != nil {
		log.Errorw("mongodb disconnect failed", "error", err)
	}
}
