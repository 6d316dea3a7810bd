package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"moviehub/movie"
	"moviehub/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultMovieCollection = "posts"

// MovieRepository implements movie.Repository on a MongoDB collection.
type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(col *mongo.Collection) *MovieRepository {
	return &MovieRepository{col: col}
}

// FilterDocument translates a movie.Filter into a query document. Search is
// escaped so it matches as a literal substring, never as a pattern.
func FilterDocument(f movie.Filter) bson.D {
	query := bson.D{}
	if f.HasCategory() {
		query = append(query, bson.E{Key: "categories", Value: f.Category})
	}
	if f.HasSearch() {
		query = append(query, bson.E{Key: "title", Value: bson.D{{
			Key: "$regex",
			Value: primitive.Regex{
				Pattern: regexp.QuoteMeta(f.Search),
				Options: "i",
			},
		}}})
	}
	return query
}

func (r *MovieRepository) Find(ctx context.Context, f movie.Filter, skip, limit int64) (movies []movie.Movie, err error) {
	defer func(start time.Time) { metrics.RecordStoreQuery("find", start, err) }(time.Now())

	cur, err := r.col.Find(ctx, FilterDocument(f),
		options.Find().SetSort(bson.D{{Key: "uid", Value: -1}}),
		options.Find().SetSkip(skip),
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movies: %w", err)
	}

	var docs []bson.D
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode movies: %w", err)
	}

	movies = make([]movie.Movie, len(docs))
	for i, d := range docs {
		movies[i] = movie.Movie(d)
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context, f movie.Filter) (n int64, err error) {
	defer func(start time.Time) { metrics.RecordStoreQuery("count", start, err) }(time.Now())

	n, err = r.col.CountDocuments(ctx, FilterDocument(f))
	if err != nil {
		return 0, fmt.Errorf("mongodb: count movies: %w", err)
	}
	return n, nil
}

func (r *MovieRepository) FindBySlug(ctx context.Context, slug string) (m movie.Movie, err error) {
	defer func(start time.Time) {
		if errors.Is(err, movie.ErrMovieNotFound) {
			metrics.RecordStoreQuery("find_one", start, nil)
			return
		}
		metrics.RecordStoreQuery("find_one", start, err)
	}(time.Now())

	var doc bson.D
	err = r.col.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, movie.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movie %q: %w", slug, err)
	}
	return movie.Movie(doc), nil
}
