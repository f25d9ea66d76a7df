package shared

import (
	"math"
	"net/url"
	"strconv"
)

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// PageFromQuery parses the page query parameter, defaulting to 1.
func PageFromQuery(q url.Values) int {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
