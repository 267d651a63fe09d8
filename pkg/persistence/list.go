package persistence

import (
	"fmt"
	"slices"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByName      = "name"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListOptions selects a page of records. Filters match top-level JSON fields
// of the stored record by their string form. Search is a case-insensitive
// substring match on the record name.
type ListOptions struct {
	Filters   map[string]string
	Search    string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

type ListResult[T any] struct {
	Items       []T
	TotalCount  int64
	HasNextPage bool
}

// Normalize applies defaults and rejects sort fields outside the allowlist.
func (o ListOptions) Normalize() (ListOptions, error) {
	if o.Limit <= 0 || o.Limit > MaxLimit {
		o.Limit = DefaultLimit
	}

	if o.Offset < 0 {
		o.Offset = 0
	}

	if o.SortBy == "" {
		o.SortBy = SortByCreatedAt
	}

	if o.SortOrder == "" {
		o.SortOrder = SortDesc
	}

	if !slices.Contains([]string{SortByCreatedAt, SortByUpdatedAt, SortByName}, o.SortBy) {
		return o, fmt.Errorf("%w: %s", ErrInvalidSortField, o.SortBy)
	}

	if o.SortOrder != SortAsc && o.SortOrder != SortDesc {
		return o, fmt.Errorf("%w: %s", ErrInvalidSortOrder, o.SortOrder)
	}

	for key := range o.Filters {
		if !validFilterKey(key) {
			return o, fmt.Errorf("%w: %s", ErrInvalidFilter, key)
		}
	}

	o.Search = strings.TrimSpace(o.Search)

	return o, nil
}

func validFilterKey(key string) bool {
	if key == "" {
		return false
	}

	for _, r := range key {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}

	return true
}

// Paginate cuts a page out of an already filtered and sorted slice.
func Paginate[T any](items []T, opts ListOptions) *ListResult[T] {
	total := int64(len(items))

	if opts.Offset >= len(items) {
		return &ListResult[T]{Items: make([]T, 0), TotalCount: total}
	}

	end := min(opts.Offset+opts.Limit, len(items))

	return &ListResult[T]{
		Items:       items[opts.Offset:end],
		TotalCount:  total,
		HasNextPage: end < len(items),
	}
}
