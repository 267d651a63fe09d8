package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dukex/fluxo/pkg/access"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
)

// ListRequest holds the pagination, sorting and search options shared by
// every listing.
type ListRequest struct {
	// Pagination
	Limit  int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`

	// Sorting
	SortBy    string `validate:"oneof=created_at updated_at name"`
	SortOrder string `validate:"oneof=asc desc"`

	Search string
}

// ListResponse is a page of records.
type ListResponse[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"total_count"`
	HasNextPage bool  `json:"has_next_page"`
}

// WithDefaults returns the request with blank pagination and sorting options
// replaced by the defaults listings use.
func (r ListRequest) WithDefaults() ListRequest {
	if r.Limit <= 0 {
		r.Limit = persistence.DefaultLimit
	}

	if r.Limit > persistence.MaxLimit {
		r.Limit = persistence.MaxLimit
	}

	if r.Offset < 0 {
		r.Offset = 0
	}

	if r.SortBy == "" {
		r.SortBy = persistence.SortByCreatedAt
	}

	if r.SortOrder == "" {
		r.SortOrder = persistence.SortDesc
	}

	return r
}

// normalize validates and sets defaults for the request.
func (r *ListRequest) normalize(op string) error {
	*r = r.WithDefaults()

	// Validate sort parameters against allowlist
	allowedSorts := []string{persistence.SortByCreatedAt, persistence.SortByUpdatedAt, persistence.SortByName}

	if !slices.Contains(allowedSorts, r.SortBy) {
		return NewValidationError(
			op,
			"INVALID_SORT_FIELD",
			fmt.Sprintf("invalid sort field '%s', allowed: %s", r.SortBy, strings.Join(allowedSorts, ", ")),
			ErrInvalidSortField,
		)
	}

	if r.SortOrder != persistence.SortAsc && r.SortOrder != persistence.SortDesc {
		return NewValidationError(
			op,
			"INVALID_SORT_ORDER",
			fmt.Sprintf("invalid sort order '%s', allowed: asc, desc", r.SortOrder),
			ErrInvalidSortOrder,
		)
	}

	r.Search = strings.TrimSpace(r.Search)

	return nil
}

func (r ListRequest) options(filters map[string]string) persistence.ListOptions {
	return persistence.ListOptions{
		Filters:   filters,
		Search:    r.Search,
		Limit:     r.Limit,
		Offset:    r.Offset,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}
}

func mapListError(op string, err error) error {
	if persistence.IsInvalidListOptions(err) {
		return NewValidationError(op, "INVALID_LIST_OPTIONS", err.Error(), ErrInvalidRequest)
	}

	return fmt.Errorf("failed to list: %w", err)
}

func listPage[T models.Entity](
	ctx context.Context,
	op string,
	repo persistence.Repository[T],
	req ListRequest,
	filters map[string]string,
) (*ListResponse[T], error) {
	result, err := repo.List(ctx, req.options(filters))
	if err != nil {
		return nil, mapListError(op, err)
	}

	return &ListResponse[T]{
		Items:       result.Items,
		TotalCount:  result.TotalCount,
		HasNextPage: result.HasNextPage,
	}, nil
}

// listVisible walks every matching record and keeps the ones principal may
// see before cutting the requested page.
func listVisible[T interface {
	models.Entity
	access.Record
}](
	ctx context.Context,
	op string,
	repo persistence.Repository[T],
	shared persistence.Repository[*models.SharedRecord],
	req ListRequest,
	filters map[string]string,
	principal access.Principal,
) (*ListResponse[T], error) {
	var grants []*models.SharedRecord

	if !principal.Anonymous() {
		all, err := collect(ctx, shared, persistence.ListOptions{Filters: map[string]string{"user_id": principal.UserID}})
		if err != nil {
			return nil, mapListError(op, err)
		}

		grants = all
	}

	opts := req.options(filters)

	all, err := collect(ctx, repo, opts)
	if err != nil {
		return nil, mapListError(op, err)
	}

	page := persistence.Paginate(access.Visible(all, principal, grants...), opts)

	return &ListResponse[T]{
		Items:       page.Items,
		TotalCount:  page.TotalCount,
		HasNextPage: page.HasNextPage,
	}, nil
}

// collect reads every page of a listing.
func collect[T models.Entity](ctx context.Context, repo persistence.Repository[T], opts persistence.ListOptions) ([]T, error) {
	opts.Offset = 0
	opts.Limit = persistence.MaxLimit

	var all []T

	for {
		result, err := repo.List(ctx, opts)
		if err != nil {
			return nil, err
		}

		all = append(all, result.Items...)

		if !result.HasNextPage {
			return all, nil
		}

		opts.Offset += len(result.Items)
	}
}

func boolFilter(filters map[string]string, key string, value *bool) {
	if value != nil {
		filters[key] = fmt.Sprint(*value)
	}
}

func stringFilter(filters map[string]string, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		filters[key] = value
	}
}
