package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"moviehub/mongodb"
	"moviehub/movie"
	"moviehub/pkg/config"
	"moviehub/pkg/logger"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchSize = 500

func main() {
	var (
		source string
		limit  int
	)

	flag.StringVar(&source, "source", "", "Path or http(s) URL of a JSON array of movie documents")
	flag.IntVar(&limit, "limit", 0, "Limit number of documents to import (0 = all)")
	flag.Parse()

	log, err := logger.New(true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("load config failed", "error", err)
	}
	if source == "" {
		log.Fatalw("-source is required")
	}

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, mongodb.Options{URI: cfg.Mongo.URI, Timeout: cfg.Mongo.Timeout})
	if err != nil {
		log.Fatalw("cannot connect to mongodb", "error", err)
	}
	defer func() { _ = mongodb.Disconnect(ctx, client, 0) }()

	dbName := cfg.Mongo.Database
	if dbName == "" {
		if dbName, err = mongodb.DatabaseFromURI(cfg.Mongo.URI); err != nil {
			log.Fatalw("cannot read database from MONGO_URI", "error", err)
		}
	}

	r, err := openSource(source)
	if err != nil {
		log.Fatalw("cannot open source", "source", source, "error", err)
	}
	defer r.Close()

	docs, err := readMovies(r, limit)
	if err != nil {
		log.Fatalw("cannot read movies", "error", err)
	}

	col := client.Database(dbName).Collection(cfg.Mongo.Collection)
	count, err := importMovies(ctx, col, docs)
	if err != nil {
		log.Fatalw("import failed", "imported", count, "error", err)
	}

	log.Infow("import completed", "rows", count, "collection", cfg.Mongo.Collection)
}

func openSource(source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.Open(source)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(source) // nolint: noctx
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return resp.Body, nil
}

// readMovies decodes a JSON array of documents, keeping each document's key
// order and value types. Extended JSON ({"$oid": ...}, {"$date": ...}) is
// understood. Documents without a slug are skipped since they could never be
// looked up.
func readMovies(r io.Reader, limit int) ([]bson.D, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	docs := make([]bson.D, 0, len(raw))
	for i, item := range raw {
		if limit > 0 && len(docs) >= limit {
			break
		}
		var doc bson.D
		if err := bson.UnmarshalExtJSON(item, false, &doc); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if strings.TrimSpace(movie.Movie(doc).Slug()) == "" {
			continue
		}
		docs = append(docs, withoutID(doc))
	}
	return docs, nil
}

// withoutID drops _id so replacing an existing record keeps its id.
func withoutID(doc bson.D) bson.D {
	out := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return out
}

// importMovies upserts documents by slug in ordered batches.
func importMovies(ctx context.Context, col *mongo.Collection, docs []bson.D) (int, error) {
	count := 0
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		models := make([]mongo.WriteModel, 0, end-start)
		for _, doc := range docs[start:end] {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.D{{Key: "slug", Value: movie.Movie(doc).Slug()}}).
				SetReplacement(doc).
				SetUpsert(true))
		}

		res, err := col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
		if err != nil {
			return count, err
		}
		count += int(res.UpsertedCount + res.MatchedCount)
	}
	return count, nil
}
