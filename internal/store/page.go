package store

import (
	"strings"

	"github.com/samber/lo"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageSpec selects one page of a filtered, sorted result.
type PageSpec struct {
	Page      int
	Size      int
	SortField string
	Ascending bool
}

// Normalize clamps page and size into their valid ranges.
func (p PageSpec) Normalize() PageSpec {
	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.Size < 1 {
		p.Size = DefaultPageSize
	}

	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}

	return p
}

func (p PageSpec) offset() int {
	return (p.Page - 1) * p.Size
}

// sortColumn resolves SortField, given in snake or camel case, to a column.
// It returns false when the field does not name a column.
func (p PageSpec) sortColumn(columns []string) (string, bool) {
	field := strings.TrimSpace(p.SortField)
	if field == "" {
		return "", false
	}

	column := lo.SnakeCase(field)
	if !lo.Contains(columns, column) {
		return "", false
	}

	return column, true
}

// Page is one page of records.
type Page[E any] struct {
	Records []E   `json:"records"`
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
}

func newPage[E any](records []E, total int64, spec PageSpec) *Page[E] {
	if records == nil {
		records = []E{}
	}

	pages := total / int64(spec.Size)
	if total%int64(spec.Size) != 0 {
		pages++
	}

	return &Page[E]{
		Records: records,
		Total:   total,
		Size:    spec.Size,
		Current: spec.Page,
		Pages:   pages,
	}
}

// MapPage converts the records of a page, keeping its counters.
func MapPage[E, T any](page *Page[E], fn func(E) T) *Page[T] {
	return &Page[T]{
		Records: lo.Map(page.Records, func(e E, _ int) T { return fn(e) }),
		Total:   page.Total,
		Size:    page.Size,
		Current: page.Current,
		Pages:   page.Pages,
	}
}
