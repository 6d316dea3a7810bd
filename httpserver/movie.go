package httpserver

import (
	"moviehub/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	msgListFailed     = "An error occurred while fetching movies."
	msgCategoryFailed = "An error occurred while fetching movies by category."
	msgMovieFailed    = "An error occurred while fetching the movie."
	msgMovieNotFound  = "Movie not found."
)

var readMethods = []string{http.MethodGet, http.MethodHead}

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.Match(readMethods, "/", s.handleListMovies)
	g.Match(readMethods, "/category/:category", s.handleListMoviesByCategory)
	g.Match(readMethods, "/:slug", s.handleGetMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Movies sorted by uid descending, optionally filtered by a case-insensitive title substring
// @Tags movies
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 20"
// @Param search query string false "Title substring"
// @Success 200 {object} movie.Page
// @Failure 500 {string} string
// @Router / [get]
func (s *Server) handleListMovies(c echo.Context) error {
	var req ListMoviesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	page, err := s.MovieService.List(c.Request().Context(), req.ToListQuery())
	if err != nil {
		return s.handleError(c, err, http.StatusInternalServerError, msgListFailed)
	}

	return c.JSON(http.StatusOK, page)
}

// handleListMoviesByCategory godoc
// @Summary List Movies By Category
// @Description Same as List Movies, restricted to one whitelisted category. Unknown categories redirect to /
// @Tags movies
// @Produce json
// @Param category path string true "Category tag"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 20"
// @Param search query string false "Title substring"
// @Success 200 {object} movie.Page
// @Success 302
// @Failure 500 {string} string
// @Router /category/{category} [get]
func (s *Server) handleListMoviesByCategory(c echo.Context) error {
	var req ListCategoryMoviesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return s.redirectInvalidCategory(c, req.Category)
	}

	page, err := s.MovieService.ListByCategory(c.Request().Context(), req.Category, req.ToListQuery())
	if err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			return s.redirectInvalidCategory(c, req.Category)
		}
		return s.handleError(c, err, http.StatusInternalServerError, msgCategoryFailed)
	}

	return c.JSON(http.StatusOK, page)
}

func (s *Server) redirectInvalidCategory(c echo.Context, category string) error {
	s.Logger.Warnw("invalid category", "category", category, "request_id", s.requestID(c))
	return c.Redirect(http.StatusFound, "/")
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Full movie record by exact, case-sensitive slug
// @Tags movies
// @Produce json
// @Param slug path string true "Movie slug"
// @Success 200 {object} movie.Movie
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /{slug} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	var req GetMovieRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusNotFound, msgMovieNotFound)
	}

	m, err := s.MovieService.GetBySlug(c.Request().Context(), req.Slug)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			s.Logger.Warnw("movie not found", "slug", req.Slug, "request_id", s.requestID(c))
			return c.String(http.StatusNotFound, msgMovieNotFound)
		}
		return s.handleError(c, err, http.StatusInternalServerError, msgMovieFailed)
	}

	return c.JSON(http.StatusOK, m)
}
