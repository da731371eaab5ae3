package query

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// PageRequest is a normalized, 1-based page request. Out-of-range values are
// clamped rather than rejected.
type PageRequest struct {
	Page int
	Size int
}

// NormalizePage clamps page and size to sane defaults: page >= 1,
// 0 < size <= MaxPageSize.
func NormalizePage(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Offset is the row offset this page starts at.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Slice pages items client-side, for the sort keys that bypass SQL paging.
func Slice[T any](items []T, p PageRequest) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// NormalizeDirection clamps a sort direction to asc or desc, ignoring case.
func NormalizeDirection(direction string) string {
	if strings.EqualFold(direction, DirectionDesc) {
		return DirectionDesc
	}
	return DirectionAsc
}
