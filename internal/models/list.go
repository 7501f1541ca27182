package models

import "strings"

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

const (
	TrashedWith = "with"
	TrashedOnly = "only"
)

// ListQuery carries the pagination, search, sort and filter parameters of
// a resource listing.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Sort    string
	Order   string
	Trashed string
	Filters map[string]string
}

// Normalize clamps paging values and lower-cases the enum-like fields.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Order = strings.ToLower(q.Order)
	if q.Order != "asc" {
		q.Order = "desc"
	}
	q.Trashed = strings.ToLower(q.Trashed)
	if q.Trashed != TrashedWith && q.Trashed != TrashedOnly {
		q.Trashed = ""
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

func (q ListQuery) Filter(key string) string {
	if q.Filters == nil {
		return ""
	}
	return strings.TrimSpace(q.Filters[key])
}

// Page is one page of a listing.
type Page[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

func NewPage[T any](items []T, q ListQuery, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Page: q.Page, PerPage: q.PerPage, Total: total}
}
