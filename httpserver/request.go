package httpserver

import (
	"moviehub/movie"

	"github.com/labstack/echo/v4"
)

// bindRequest fills req from path params and the query string. Catalog
// routes are reads, so a request body is never bound.
func bindRequest(c echo.Context, req interface{}) error {
	b := &echo.DefaultBinder{}
	if err := b.BindPathParams(c, req); err != nil {
		return err
	}
	return b.BindQueryParams(c, req)
}

// ListMoviesRequest keeps page and limit as raw strings: bad numbers fall
// back to defaults instead of failing the bind.
type ListMoviesRequest struct {
	Page   string `query:"page"`
	Limit  string `query:"limit"`
	Search string `query:"search"`
}

func (r ListMoviesRequest) ToListQuery() movie.ListQuery {
	return movie.ListQuery{
		Pagination: movie.NewPagination(r.Page, r.Limit),
		Search:     r.Search,
	}
}

type ListCategoryMoviesRequest struct {
	ListMoviesRequest
	Category string `param:"category" validate:"required,category"`
}

type GetMovieRequest struct {
	Slug string `param:"slug" validate:"required"`
}
