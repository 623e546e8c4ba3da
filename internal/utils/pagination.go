package utils

import "strconv"

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PageParams carries bounds-clamped pagination values. Page starts at 1 and
// PerPage is clamped to [1, 100].
type PageParams struct {
	Page    int
	PerPage int
}

// ParsePageParams turns raw query strings into clamped pagination values.
// Anything unparseable falls back to the defaults.
func ParsePageParams(pageStr, perPageStr string) PageParams {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// Slice returns the half-open index range [lo, hi) selecting this page out
// of total items. An out-of-range page yields an empty range.
func (p PageParams) Slice(total int) (lo, hi int) {
	lo = (p.Page - 1) * p.PerPage
	if lo > total {
		lo = total
	}
	hi = lo + p.PerPage
	if hi > total {
		hi = total
	}
	return lo, hi
}

// TotalPages reports how many pages the given item count spans.
func (p PageParams) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.PerPage - 1) / p.PerPage
}
