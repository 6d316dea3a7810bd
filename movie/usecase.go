package movie

import (
	"context"
	"fmt"

	"moviehub/errs"
)

type Service interface {
	List(ctx context.Context, q ListQuery) (Page, error)
	ListByCategory(ctx context.Context, category string, q ListQuery) (Page, error)
	GetBySlug(ctx context.Context, slug string) (Movie, error)
}

type Repository interface {
	// Find returns at most limit movies matching f, sorted by uid descending,
	// after skipping the first skip matches.
	Find(ctx context.Context, f Filter, skip, limit int64) ([]Movie, error)
	Count(ctx context.Context, f Filter) (int64, error)
	// FindBySlug returns ErrMovieNotFound when no record has the slug.
	FindBySlug(ctx context.Context, slug string) (Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) List(ctx context.Context, q ListQuery) (Page, error) {
	return uc.page(ctx, NewFilter(q.Search, ""), q.Pagination)
}

func (uc *Usecase) ListByCategory(ctx context.Context, category string, q ListQuery) (Page, error) {
	if !IsValidCategory(category) {
		return Page{}, ErrInvalidCategory
	}
	return uc.page(ctx, NewFilter(q.Search, category), q.Pagination)
}

func (uc *Usecase) GetBySlug(ctx context.Context, slug string) (Movie, error) {
	m, err := uc.r.FindBySlug(ctx, slug)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie by slug: %w", err)
	}
	return m, nil
}

func (uc *Usecase) page(ctx context.Context, f Filter, p Pagination) (Page, error) {
	p = p.normalize()

	movies, err := uc.r.Find(ctx, f, p.Skip(), int64(p.Limit))
	if err != nil {
		return Page{}, fmt.Errorf("find movies: %w", err)
	}

	total, err := uc.r.Count(ctx, f)
	if err != nil {
		return Page{}, fmt.Errorf("count movies: %w", err)
	}

	if movies == nil {
		movies = []Movie{}
	}

	return Page{
		Movies:     movies,
		Page:       p.Page,
		TotalPages: p.TotalPages(total),
	}, nil
}
