package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, ClampLimit(0, 10))
	assert.Equal(t, 10, ClampLimit(-5, 10))
	assert.Equal(t, 10, ClampLimit(50, 10))
	assert.Equal(t, 7, ClampLimit(7, 10))
	assert.Equal(t, 10, ClampLimit(10, 10))
}

func TestBuildCursorPaginationFirstPage(t *testing.T) {
	p := BuildCursorPagination(10, "", "next", "id-a", "id-j", true)

	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
	assert.Nil(t, p.CurrentCursor)
	assert.Nil(t, p.PrevCursor)
	assert.Equal(t, "id-j", *p.NextCursor)
}

func TestBuildCursorPaginationMiddlePage(t *testing.T) {
	p := BuildCursorPagination(10, "id-j", "next", "id-k", "id-t", true)

	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Equal(t, "id-j", *p.CurrentCursor)
	assert.Equal(t, "id-t", *p.NextCursor)
	assert.Equal(t, "id-k", *p.PrevCursor)
}

func TestBuildCursorPaginationLastPage(t *testing.T) {
	p := BuildCursorPagination(10, "id-t", "next", "id-u", "id-w", false)

	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Nil(t, p.NextCursor)
	assert.Equal(t, "id-u", *p.PrevCursor)
}

func TestBuildCursorPaginationPrevDirection(t *testing.T) {
	p := BuildCursorPagination(10, "id-k", "prev", "id-a", "id-j", false)

	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Nil(t, p.NextCursor)
	assert.Equal(t, "id-a", *p.PrevCursor)

	p = BuildCursorPagination(10, "id-k", "prev", "id-a", "id-j", true)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Equal(t, "id-a", *p.PrevCursor)
}

func TestBuildOffsetPagination(t *testing.T) {
	p := BuildOffsetPagination(1, 60, 150, 1000)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(150), p.TotalFoods)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)

	p = BuildOffsetPagination(3, 60, 150, 1000)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestBuildOffsetPaginationCapsTotal(t *testing.T) {
	p := BuildOffsetPagination(1, 60, 5000, 1000)

	assert.Equal(t, int64(1000), p.TotalFoods)
	assert.Equal(t, 17, p.TotalPages) // ceil(1000/60)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(1, 60))
	assert.Equal(t, 60, PageOffset(2, 60))
	assert.Equal(t, 0, PageOffset(0, 60))
	assert.Equal(t, 0, PageOffset(-3, 60))
}
