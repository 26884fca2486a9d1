package models

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams drive every searchable, sortable, paginated listing.
type ListParams struct {
	Search    string    `json:"search"`
	SortField string    `json:"sort_field"`
	SortOrder SortOrder `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page      int       `json:"page" validate:"gte=0"`
	PageSize  int       `json:"page_size" validate:"gte=0,lte=100"`
}

func (p ListParams) Normalize() ListParams {
	p.Search = strings.TrimSpace(p.Search)

	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}

	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}

	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PaginatedResponse[T any] struct {
	Items       []T `json:"items"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

func NewPaginatedResponse[T any](items []T, total int, p ListParams) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}

	pages := 0
	if p.PageSize > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}

	return &PaginatedResponse[T]{
		Items:       items,
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
	}
}
