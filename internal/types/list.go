package types

// Sort keys accepted by the group listing.
const (
	SortDateDesc = "date-desc"
	SortDateAsc  = "date-asc"
	SortUpdated  = "updated"
	SortTitle    = "title"
)

// DefaultPageSize matches the portal's fixed page length.
const DefaultPageSize = 20

// ValidSortKey reports whether key is one of the accepted sort keys.
func ValidSortKey(key string) bool {
	switch key {
	case SortDateDesc, SortDateAsc, SortUpdated, SortTitle:
		return true
	}
	return false
}

// ListQuery is the listing filter state. Mutating a filter through a setter
// resets the page to 1; only SetPage moves within the current filter.
type ListQuery struct {
	Search   string `form:"search"`
	Tag      string `form:"tag"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	PageSize int    `form:"-"`
}

// NewListQuery returns the default listing state.
func NewListQuery() ListQuery {
	return ListQuery{
		Sort:     SortDateDesc,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Normalize clamps out-of-range values after query-string binding.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if !ValidSortKey(q.Sort) {
		q.Sort = SortDateDesc
	}
}

func (q *ListQuery) SetSearch(search string) {
	if q.Search != search {
		q.Search = search
		q.Page = 1
	}
}

func (q *ListQuery) SetTag(tag string) {
	if q.Tag != tag {
		q.Tag = tag
		q.Page = 1
	}
}

func (q *ListQuery) SetSort(sort string) {
	if !ValidSortKey(sort) {
		sort = SortDateDesc
	}
	if q.Sort != sort {
		q.Sort = sort
		q.Page = 1
	}
}

func (q *ListQuery) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q.Page = page
}

// Offset returns the zero-based row offset for the current page.
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TotalPages computes the page count for a result set, minimum 1.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize < 1 || totalCount <= 0 {
		return 1
	}
	pages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}
