package models

import (
	"encoding/json"
	"fmt"

	"linkboard/internal/common"
)

// SortDirection is the direction of one ORDER BY entry.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// OrderField names a sortable link column.
type OrderField string

const (
	OrderByDescription OrderField = "description"
	OrderByURL         OrderField = "url"
	OrderByCreatedAt   OrderField = "createdAt"
)

// LinkOrder is one entry of a feed's ORDER BY sequence.
type LinkOrder struct {
	Field     OrderField    `json:"field"`
	Direction SortDirection `json:"direction"`
}

// FeedQuery carries the feed parameters. Nil pointer fields mean "absent":
// no filter matches everything, absent skip defaults to 0, absent take is
// unbounded up to the store's list cap.
type FeedQuery struct {
	Filter  *string
	Skip    *int
	Take    *int
	OrderBy []LinkOrder
}

// Validate checks pagination bounds and the ORDER BY whitelist.
func (q FeedQuery) Validate() error {
	if q.Skip != nil && *q.Skip < 0 {
		return fmt.Errorf("%w: skip must be non-negative", common.ErrInvalidArgument)
	}
	if q.Take != nil && *q.Take < 0 {
		return fmt.Errorf("%w: take must be non-negative", common.ErrInvalidArgument)
	}
	for _, o := range q.OrderBy {
		switch o.Field {
		case OrderByDescription, OrderByURL, OrderByCreatedAt:
		default:
			return fmt.Errorf("%w: unknown orderBy field %q", common.ErrInvalidArgument, o.Field)
		}
		switch o.Direction {
		case SortAsc, SortDesc:
		default:
			return fmt.Errorf("%w: unknown sort direction %q", common.ErrInvalidArgument, o.Direction)
		}
	}
	return nil
}

type feedKey struct {
	Filter  *string     `json:"filter,omitempty"`
	Skip    *int        `json:"skip,omitempty"`
	Take    *int        `json:"take,omitempty"`
	OrderBy []LinkOrder `json:"orderBy,omitempty"`
}

// CacheKey derives a deterministic identifier from the exact parameter set.
// Identical queries always produce identical keys, so callers can use it for
// caching; the key carries no data dependence and does not invalidate when
// the underlying links change.
func (q FeedQuery) CacheKey() string {
	b, _ := json.Marshal(feedKey{Filter: q.Filter, Skip: q.Skip, Take: q.Take, OrderBy: q.OrderBy})
	return "main-feed:" + string(b)
}

// Feed is the result of a feed query: the windowed links, the count of all
// links matching the filter regardless of the window, and the query's
// cache key.
type Feed struct {
	Links []*Link `json:"links"`
	Count int     `json:"count"`
	ID    string  `json:"id"`
}
