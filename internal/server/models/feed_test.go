package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkboard/internal/common"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestFeedQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   FeedQuery
		wantErr bool
	}{
		{name: "empty query", query: FeedQuery{}},
		{
			name:  "full query",
			query: FeedQuery{Filter: strPtr("go"), Skip: intPtr(0), Take: intPtr(10), OrderBy: []LinkOrder{{Field: OrderByCreatedAt, Direction: SortDesc}}},
		},
		{name: "negative skip", query: FeedQuery{Skip: intPtr(-1)}, wantErr: true},
		{name: "negative take", query: FeedQuery{Take: intPtr(-5)}, wantErr: true},
		{
			name:    "unknown field",
			query:   FeedQuery{OrderBy: []LinkOrder{{Field: "votes", Direction: SortAsc}}},
			wantErr: true,
		},
		{
			name:    "unknown direction",
			query:   FeedQuery{OrderBy: []LinkOrder{{Field: OrderByURL, Direction: "sideways"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedQueryCacheKeyDeterministic(t *testing.T) {
	a := FeedQuery{Filter: strPtr("go"), Skip: intPtr(2), Take: intPtr(5), OrderBy: []LinkOrder{{Field: OrderByCreatedAt, Direction: SortDesc}}}
	b := FeedQuery{Filter: strPtr("go"), Skip: intPtr(2), Take: intPtr(5), OrderBy: []LinkOrder{{Field: OrderByCreatedAt, Direction: SortDesc}}}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestFeedQueryCacheKeySensitivity(t *testing.T) {
	base := FeedQuery{Filter: strPtr("go"), Skip: intPtr(2), Take: intPtr(5), OrderBy: []LinkOrder{{Field: OrderByCreatedAt, Direction: SortDesc}}}

	variants := []FeedQuery{
		{Filter: strPtr("rust"), Skip: intPtr(2), Take: intPtr(5), OrderBy: base.OrderBy},
		{Filter: strPtr("go"), Skip: intPtr(3), Take: intPtr(5), OrderBy: base.OrderBy},
		{Filter: strPtr("go"), Skip: intPtr(2), Take: intPtr(6), OrderBy: base.OrderBy},
		{Filter: strPtr("go"), Skip: intPtr(2), Take: intPtr(5), OrderBy: []LinkOrder{{Field: OrderByURL, Direction: SortDesc}}},
		{Filter: strPtr("go"), Skip: intPtr(2), Take: intPtr(5)},
		{Skip: intPtr(2), Take: intPtr(5), OrderBy: base.OrderBy},
	}

	seen := map[string]bool{base.CacheKey(): true}
	for _, v := range variants {
		key := v.CacheKey()
		assert.False(t, seen[key], "key %q collides", key)
		seen[key] = true
	}
}

func TestFeedQueryCacheKeyEmptyFilterDistinctFromAbsent(t *testing.T) {
	withEmpty := FeedQuery{Filter: strPtr("")}
	absent := FeedQuery{}

	assert.NotEqual(t, withEmpty.CacheKey(), absent.CacheKey())
}
