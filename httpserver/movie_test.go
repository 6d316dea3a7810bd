// nolint: funlen
package httpserver_test

import (
	"errors"
	"fmt"
	"moviehub/movie"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

func numberedMovies(from, to int64) []movie.Movie {
	movies := []movie.Movie{}
	for uid := from; uid >= to; uid-- {
		movies = append(movies, movie.Movie{
			{Key: "uid", Value: uid},
			{Key: "slug", Value: fmt.Sprintf("movie-%d", uid)},
			{Key: "title", Value: fmt.Sprintf("Movie %d", uid)},
			{Key: "categories", Value: bson.A{"hindi-dubbed-movies"}},
		})
	}
	return movies
}

func TestListMovies(t *testing.T) {
	t.Run("should return 200 with defaults", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		q := movie.ListQuery{Pagination: movie.Pagination{Page: 1, Limit: 20}}
		svc.On("List", mock.Anything, q).
			Return(movie.Page{Movies: numberedMovies(3, 1), Page: 1, TotalPages: 1}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		page := decodePage(t, rec)
		assert.Len(t, page.Movies, 3)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, "movie-3", page.Movies[0]["slug"])
		svc.AssertExpectations(t)
	})

	t.Run("should pass page, limit and search", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		q := movie.ListQuery{Pagination: movie.Pagination{Page: 2, Limit: 10}, Search: "the matrix"}
		svc.On("List", mock.Anything, q).
			Return(movie.Page{Movies: []movie.Movie{}, Page: 2, TotalPages: 0}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/?page=2&limit=10&search=the+matrix", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"movies":[],"page":2,"totalPages":0}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should fall back to defaults for bad numbers", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		q := movie.ListQuery{Pagination: movie.Pagination{Page: 1, Limit: 20}}
		svc.On("List", mock.Anything, q).Return(movie.Page{Movies: []movie.Movie{}, Page: 1}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/?page=abc&limit=0", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should return 500 text without internal detail", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("List", mock.Anything, mock.Anything).
			Return(movie.Page{}, errors.New("mongodb: find movies: connection refused")).Once()

		rec := makeRequest(server, http.MethodGet, "/", nil)

		assertPlainText(t, rec, http.StatusInternalServerError, "An error occurred while fetching movies.")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestListMoviesByCategory(t *testing.T) {
	t.Run("should return the requested page of a category", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		q := movie.ListQuery{Pagination: movie.Pagination{Page: 2, Limit: 10}}
		svc.On("ListByCategory", mock.Anything, "hindi-dubbed-movies", q).
			Return(movie.Page{Movies: numberedMovies(15, 6), Page: 2, TotalPages: 3}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/category/hindi-dubbed-movies?page=2&limit=10", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		page := decodePage(t, rec)
		assert.Len(t, page.Movies, 10)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, float64(15), page.Movies[0]["uid"])
		assert.Equal(t, float64(6), page.Movies[9]["uid"])
		svc.AssertExpectations(t)
	})

	t.Run("should redirect to root for an unknown category", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)

		for _, category := range []string{"foo", "netflix-movies", "Netflix"} {
			rec := makeRequest(server, http.MethodGet, "/category/"+category, nil)

			assert.Equal(t, http.StatusFound, rec.Code, category)
			assert.Equal(t, "/", rec.Header().Get("Location"), category)
		}
		svc.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should redirect when the service rejects the category", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("ListByCategory", mock.Anything, "netflix", mock.Anything).
			Return(movie.Page{}, movie.ErrInvalidCategory).Once()

		rec := makeRequest(server, http.MethodGet, "/category/netflix", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("should return 500 text on storage error", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("ListByCategory", mock.Anything, "netflix", mock.Anything).
			Return(movie.Page{}, errors.New("server selection timeout")).Once()

		rec := makeRequest(server, http.MethodGet, "/category/netflix?search=x", nil)

		assertPlainText(t, rec, http.StatusInternalServerError, "An error occurred while fetching movies by category.")
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("should return the full record", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		m := movie.Movie{
			{Key: "_id", Value: "65a1f0c2e4b0a1b2c3d4e5f6"},
			{Key: "uid", Value: int32(42)},
			{Key: "slug", Value: "the-matrix"},
			{Key: "title", Value: "The Matrix"},
			{Key: "categories", Value: bson.A{"netflix"}},
			{Key: "synopsis", Value: "Neo wakes up."},
		}
		svc.On("GetBySlug", mock.Anything, "the-matrix").Return(m, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/the-matrix", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			`{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","uid":42,"slug":"the-matrix","title":"The Matrix","categories":["netflix"],"synopsis":"Neo wakes up."}`,
			strings.TrimSpace(rec.Body.String()))
		svc.AssertExpectations(t)
	})

	t.Run("should pass a sparse record through as stored", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		m := movie.Movie{{Key: "uid", Value: "1024"}, {Key: "slug", Value: "only-slug"}}
		svc.On("GetBySlug", mock.Anything, "only-slug").Return(m, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/only-slug", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"uid":"1024","slug":"only-slug"}`, strings.TrimSpace(rec.Body.String()))
	})

	t.Run("should return 404 text when absent", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("GetBySlug", mock.Anything, "missing").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := makeRequest(server, http.MethodGet, "/missing", nil)

		assertPlainText(t, rec, http.StatusNotFound, "Movie not found.")
	})

	t.Run("should not normalize the slug", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("GetBySlug", mock.Anything, "The-Matrix").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := makeRequest(server, http.MethodGet, "/The-Matrix", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should return 500 text on storage error", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("GetBySlug", mock.Anything, "x").Return(movie.Movie{}, errors.New("socket closed")).Once()

		rec := makeRequest(server, http.MethodGet, "/x", nil)

		assertPlainText(t, rec, http.StatusInternalServerError, "An error occurred while fetching the movie.")
	})

	t.Run("category path is not taken as a slug", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("ListByCategory", mock.Anything, "netflix", mock.Anything).
			Return(movie.Page{Movies: []movie.Movie{}, Page: 1}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/category/netflix", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
	})
}

func TestMovieRoutes_IgnoreRequestBody(t *testing.T) {
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	t.Run("list ignores a json body", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		q := movie.ListQuery{Pagination: movie.Pagination{Page: 1, Limit: 20}}
		svc.On("List", mock.Anything, q).Return(movie.Page{Movies: []movie.Movie{}, Page: 1}, nil).Once()

		rec := makeRequestWithBody(server, http.MethodGet, "/", `{"page":2}`, jsonHeaders)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("slug comes from the path only", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		m := movie.Movie{{Key: "slug", Value: "the-matrix"}}
		svc.On("GetBySlug", mock.Anything, "the-matrix").Return(m, nil).Once()

		rec := makeRequestWithBody(server, http.MethodGet, "/the-matrix", `{"slug":"other"}`, jsonHeaders)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
		svc.AssertNotCalled(t, "GetBySlug", mock.Anything, "other")
	})

	t.Run("category comes from the path only", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("ListByCategory", mock.Anything, "netflix", mock.Anything).
			Return(movie.Page{Movies: []movie.Movie{}, Page: 1}, nil).Once()

		rec := makeRequestWithBody(server, http.MethodGet, "/category/netflix", `{"category":"bogus","limit":"x"}`, jsonHeaders)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestMovieRoutes_HeadAndTrailingSlash(t *testing.T) {
	t.Run("HEAD on the listing", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("List", mock.Anything, mock.Anything).Return(movie.Page{Movies: []movie.Movie{}, Page: 1}, nil).Once()

		rec := makeRequest(server, http.MethodHead, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("HEAD on an unknown slug", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("GetBySlug", mock.Anything, "missing").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := makeRequest(server, http.MethodHead, "/missing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("trailing slash on a category", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		q := movie.ListQuery{Pagination: movie.Pagination{Page: 2, Limit: 20}}
		svc.On("ListByCategory", mock.Anything, "netflix", q).
			Return(movie.Page{Movies: []movie.Movie{}, Page: 2}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/category/netflix/?page=2", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("trailing slash on a slug", func(t *testing.T) {
		svc := new(MockMovieService)
		server := mustCreateServer(t, svc)
		svc.On("GetBySlug", mock.Anything, "the-matrix").Return(movie.Movie{{Key: "slug", Value: "the-matrix"}}, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/the-matrix/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("other methods are not allowed", func(t *testing.T) {
		server := mustCreateServer(t, new(MockMovieService))

		rec := makeRequest(server, http.MethodPost, "/the-matrix", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
