package services

import (
	"math"

	"gorm.io/gorm"
)

const (
	defaultPageLimit = 15
	maxPageLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

// Normalize fills in defaults for missing or out of range values.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scope applies limit and offset to a query.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return db.Offset(p.Offset()).Limit(p.Limit)
}

type PageMetadata struct {
	Total        int64 `json:"total"`
	CurrentPage  int   `json:"currentPage"`
	Limit        int   `json:"limit"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	PreviousPage int   `json:"previousPage"`
	NextPage     int   `json:"nextPage"`
}

func newPageMetadata(p Page, total int64) PageMetadata {
	p = p.Normalize()
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return PageMetadata{
		Total:        total,
		CurrentPage:  p.Page,
		Limit:        p.Limit,
		HasPrevPage:  p.Page > 1,
		HasNextPage:  totalPages > p.Page,
		PreviousPage: p.Page - 1,
		NextPage:     p.Page + 1,
	}
}
