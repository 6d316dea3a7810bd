package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "test"
)

type Options struct {
	URI string
	// Timeout bounds the initial connect and ping.
	Timeout time.Duration
}

var (
	connectMongo = func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
		return mongo.Connect(ctx, opts)
	}
	pingMongo = func(ctx context.Context, cli *mongo.Client) error {
		return cli.Ping(ctx, readpref.Primary())
	}
	disconnectMongo = func(ctx context.Context, cli *mongo.Client) error {
		return cli.Disconnect(ctx)
	}
)

// NewClient connects and pings the primary so an unreachable server fails
// at startup rather than on the first request.
func NewClient(ctx context.Context, opts Options) (*mongo.Client, error) {
	uri := strings.TrimSpace(opts.URI)
	if uri == "" {
		return nil, errors.New("mongodb: uri is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryReads(false).
		// nested documents in pass-through fields must come back as maps to
		// render as JSON objects
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	cli, err := connectMongo(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := pingMongo(ctx, cli); err != nil {
		_ = disconnectMongo(context.Background(), cli)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return cli, nil
}

// Disconnect closes the client within timeout.
func Disconnect(ctx context.Context, cli *mongo.Client, timeout time.Duration) error {
	if cli == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return disconnectMongo(ctx, cli)
}

// Ping checks the primary is reachable.
func Ping(ctx context.Context, cli *mongo.Client) error {
	return pingMongo(ctx, cli)
}

// DatabaseFromURI returns the database named in the URI path, or "test"
// when the URI does not name one.
func DatabaseFromURI(uri string) (string, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("mongodb: parse uri: %w", err)
	}
	if cs.Database == "" {
		return defaultDatabase, nil
	}
	return cs.Database, nil
}
