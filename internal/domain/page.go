package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sort directions
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// PageRequest selects a zero-based page of results and its ordering
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalize clamps the page and size and upper-cases the direction
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	r.SortDir = strings.ToUpper(strings.TrimSpace(r.SortDir))
	if r.SortDir != SortDesc {
		r.SortDir = SortAsc
	}
	if strings.TrimSpace(r.SortBy) == "" {
		r.SortBy = "id"
	}
	return r
}

// Offset is the number of rows skipped before this page
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is one slice of an ordered result set
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page from its rows and the total row count
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    (int(total) + req.Size - 1) / req.Size,
	}
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Empty reports whether no filter is set
func (f ProductFilter) Empty() bool {
	return strings.TrimSpace(f.Name) == "" && strings.TrimSpace(f.Category) == "" && f.MinPrice == nil && f.MaxPrice == nil
}
