package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetters_ResetPageOnFilterChange(t *testing.T) {
	t.Parallel()

	q := NewListQuery()
	q.SetPage(3)

	q.SetTag("build")
	assert.Equal(t, 1, q.Page, "tag change must reset the page")

	q.SetPage(3)
	q.SetTag("build")
	assert.Equal(t, 3, q.Page, "setting the same tag keeps the page")

	q.SetSearch("robot")
	assert.Equal(t, 1, q.Page)

	q.SetPage(2)
	q.SetSort(SortTitle)
	assert.Equal(t, 1, q.Page)
}

func TestSetSort_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	q := NewListQuery()
	q.SetSort("nonsense")
	assert.Equal(t, SortDateDesc, q.Sort)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	q := ListQuery{Page: -2, Sort: "bogus"}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, SortDateDesc, q.Sort)
}

func TestOffset(t *testing.T) {
	t.Parallel()

	q := NewListQuery()
	assert.Equal(t, 0, q.Offset())
	q.SetPage(3)
	assert.Equal(t, 40, q.Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 2, TotalPages(25, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}
