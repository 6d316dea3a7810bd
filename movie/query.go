package movie

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Pagination is a validated page window. Page and Limit are always >= 1.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination parses raw query values leniently: anything that is not a
// positive integer falls back to the default instead of being rejected.
func NewPagination(rawPage, rawLimit string) Pagination {
	return Pagination{
		Page:  positiveIntOr(rawPage, DefaultPage),
		Limit: positiveIntOr(rawLimit, DefaultLimit),
	}
}

// Skip is the number of matching records before the window starts.
// Pages too far out to address saturate instead of wrapping negative.
func (p Pagination) Skip() int64 {
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > 0 && limit > math.MaxInt64/pages {
		return math.MaxInt64
	}
	return pages * limit
}

// TotalPages is ceil(total / limit).
func (p Pagination) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

func (p Pagination) normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// positiveIntOr accepts a leading run of digits the way loose numeric
// coercion does ("12abc" is 12), and falls back when nothing usable is left.
func positiveIntOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && raw[end] == '+' {
		end++
	}
	start := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == start {
		return fallback
	}
	n, err := strconv.Atoi(raw[start:end])
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Filter is the typed selection applied to the catalog. Zero values mean
// "no constraint".
type Filter struct {
	// Search is matched as a case-insensitive substring of the title.
	Search string
	// Category is matched exactly against one element of the categories array.
	Category string
}

// NewFilter builds a Filter from request input. Search is used verbatim,
// an empty category leaves the catalog unrestricted.
func NewFilter(search, category string) Filter {
	return Filter{
		Search:   search,
		Category: category,
	}
}

func (f Filter) HasSearch() bool {
	return f.Search != ""
}

func (f Filter) HasCategory() bool {
	return f.Category != ""
}

// ListQuery carries what a listing request asks for.
type ListQuery struct {
	Pagination Pagination
	Search     string
}
