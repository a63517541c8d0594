package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaginationParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected PaginationParams
	}{
		{"defaults", "", PaginationParams{Page: 1, PageSize: DefaultPageSize}},
		{"explicit", "?page=3&pageSize=10", PaginationParams{Page: 3, PageSize: 10}},
		{"clamped", "?pageSize=1000", PaginationParams{Page: 1, PageSize: MaxPageSize}},
		{"garbage", "?page=-2&pageSize=abc", PaginationParams{Page: 1, PageSize: DefaultPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/moments"+tt.query, nil)
			assert.Equal(t, tt.expected, ExtractPaginationParams(r))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Paginate(items, PaginationParams{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	page, meta = Paginate(items, PaginationParams{Page: 3, PageSize: 2})
	assert.Equal(t, []int{5}, page)
	assert.False(t, meta.HasNext)

	page, _ = Paginate(items, PaginationParams{Page: 9, PageSize: 2})
	assert.Empty(t, page)
}
