package httpserver_test

import (
	"context"
	"moviehub/httpserver"
	"moviehub/movie"
	"moviehub/pkg/config"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://hdmovieshub.art"

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) List(ctx context.Context, q movie.ListQuery) (movie.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) ListByCategory(ctx context.Context, category string, q movie.ListQuery) (movie.Page, error) {
	args := m.Called(ctx, category, q)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) GetBySlug(ctx context.Context, slug string) (movie.Movie, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AppEnv = "local"
	cfg.AllowOrigin = testOrigin
	return cfg
}

func mustCreateServer(t testing.TB, svc movie.Service, options ...httpserver.Options) *httpserver.Server {
	t.Helper()
	opts := append([]httpserver.Options{
		httpserver.WithConfig(testConfig()),
		httpserver.WithMovieService(svc),
	}, options...)
	server, err := httpserver.New(opts...)
	require.NoError(t, err)
	return server
}

func makeRequest(server *httpserver.Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	return makeRequestWithBody(server, method, path, "", headers)
}

func makeRequestWithBody(server *httpserver.Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

type pageResponse struct {
	Movies     []map[string]interface{} `json:"movies"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"totalPages"`
}

func decodePage(t testing.TB, rec *httptest.ResponseRecorder) pageResponse {
	t.Helper()
	var page pageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func decodeObject(t testing.TB, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &obj))
	return obj
}

func assertPlainText(t testing.TB, rec *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, body, rec.Body.String())
}
