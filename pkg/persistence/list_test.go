package persistence_test

import (
	"testing"

	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOptionsNormalize(t *testing.T) {
	opts, err := persistence.ListOptions{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, persistence.DefaultLimit, opts.Limit)
	assert.Equal(t, persistence.SortByCreatedAt, opts.SortBy)
	assert.Equal(t, persistence.SortDesc, opts.SortOrder)

	opts, err = persistence.ListOptions{Limit: 500, Offset: -3, Search: "  compras "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, persistence.DefaultLimit, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
	assert.Equal(t, "compras", opts.Search)

	testCases := []struct {
		name string
		opts persistence.ListOptions
	}{
		{"sort field", persistence.ListOptions{SortBy: "password"}},
		{"sort order", persistence.ListOptions{SortOrder: "sideways"}},
		{"filter key", persistence.ListOptions{Filters: map[string]string{"name; drop": "x"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.opts.Normalize()
			require.Error(t, err)
			assert.True(t, persistence.IsInvalidListOptions(err))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := persistence.Paginate(items, persistence.ListOptions{Limit: 2, Offset: 0})
	assert.Equal(t, []int{1, 2}, page.Items)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.True(t, page.HasNextPage)

	page = persistence.Paginate(items, persistence.ListOptions{Limit: 2, Offset: 4})
	assert.Equal(t, []int{5}, page.Items)
	assert.False(t, page.HasNextPage)

	page = persistence.Paginate(items, persistence.ListOptions{Limit: 2, Offset: 10})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.TotalCount)
}
