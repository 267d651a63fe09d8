package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/google/uuid"
)

// Repository stores one collection as rows of (id, name, data, timestamps).
type Repository[T models.Entity] struct {
	db         *sql.DB
	logger     *slog.Logger
	collection persistence.Collection
	newEntity  func() T
	now        func() time.Time
}

func NewRepository[T models.Entity](
	db *sql.DB,
	logger *slog.Logger,
	collection persistence.Collection,
	newEntity func() T,
) *Repository[T] {
	return &Repository[T]{
		db:         db,
		logger:     logger.With("collection", collection.Name),
		collection: collection,
		newEntity:  newEntity,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var sortColumns = map[string]string{
	persistence.SortByCreatedAt: "created_at",
	persistence.SortByUpdatedAt: "updated_at",
	persistence.SortByName:      "LOWER(name)",
}

func (r *Repository[T]) where(opts persistence.ListOptions) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	keys := make([]string, 0, len(opts.Filters))
	for key := range opts.Filters {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		args = append(args, key, opts.Filters[key])
		conditions = append(conditions, fmt.Sprintf("data->>$%d::text = $%d", len(args)-1, len(args)))
	}

	if opts.Search != "" {
		args = append(args, "%"+escapeLike(opts.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns a filtered, sorted page of the collection.
func (r *Repository[T]) List(ctx context.Context, opts persistence.ListOptions) (*persistence.ListResult[T], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	where, args := r.where(opts)

	var total int64

	countQuery := "SELECT COUNT(*) FROM " + r.collection.Name + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", r.collection.Name, err)
	}

	query := fmt.Sprintf(
		"SELECT data FROM %s%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		r.collection.Name, where, sortColumns[opts.SortBy], strings.ToUpper(opts.SortOrder), len(args)+1, len(args)+2,
	)

	rows, err := r.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.collection.Name, err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	items := make([]T, 0, opts.Limit)

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.collection.Name, err)
		}

		entity := r.newEntity()
		if err := json.Unmarshal(raw, entity); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", r.collection.Name, err)
		}

		items = append(items, entity)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", r.collection.Name, err)
	}

	return &persistence.ListResult[T]{
		Items:       items,
		TotalCount:  total,
		HasNextPage: int64(opts.Offset+len(items)) < total,
	}, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var (
		zero T
		raw  []byte
	)

	query := "SELECT data FROM " + r.collection.Name + " WHERE id = $1"

	err := r.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, persistence.NotFound("GetByID", r.collection, id)
		}

		return zero, persistence.NewEntityError("GetByID", r.collection, id, err)
	}

	entity := r.newEntity()
	if err := json.Unmarshal(raw, entity); err != nil {
		return zero, fmt.Errorf("failed to unmarshal %s %s: %w", r.collection.Name, id, err)
	}

	return entity, nil
}

// Save upserts the record.
func (r *Repository[T]) Save(ctx context.Context, entity T) error {
	if entity.GetID() == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate %s ID: %w", r.collection.Name, err)
		}

		entity.SetID(id.String())
	}

	entity.Stamp(r.now())

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", r.collection.Name, entity.GetID(), err)
	}

	query := `INSERT INTO ` + r.collection.Name + ` (id, name, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name
		  , data = EXCLUDED.data
		  , updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		entity.GetID(),
		entity.GetName(),
		data,
		entity.GetCreatedAt(),
		entity.GetUpdatedAt(),
	)
	if err != nil {
		return persistence.NewEntityError("Save", r.collection, entity.GetID(), err)
	}

	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+r.collection.Name+" WHERE id = $1", id)
	if err != nil {
		return persistence.NewEntityError("Delete", r.collection, id, err)
	}

	return nil
}
