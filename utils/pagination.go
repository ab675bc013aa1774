package utils

import (
	"math"
)

// Page describes one slice of an ordered result set. Page numbers are
// 1-indexed and always valid: out-of-range requests clamp instead of
// erroring, so a listing with items never serves an empty page.
type Page struct {
	Number      int   `json:"currentPage"`
	Size        int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
	Offset      int   `json:"-"`
}

// Paginate computes the page metadata for a result set of total items.
// Requests for page <= 0 clamp to the first page, requests beyond the
// last page clamp to the last page, and an empty set is a single empty
// page.
func Paginate(total int64, page, size int) Page {
	if size < 1 {
		size = 1
	}

	totalPages := int(math.Ceil(float64(total) / float64(size)))
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Page{
		Number:      page,
		Size:        size,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		Offset:      (page - 1) * size,
	}
}
