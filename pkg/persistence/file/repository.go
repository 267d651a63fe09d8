package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/google/uuid"
)

var errInvalidID = errors.New("invalid id")

// Repository keeps one JSON file per record under <root>/<collection>.
type Repository[T models.Entity] struct {
	root       string
	collection persistence.Collection
	newEntity  func() T
	logger     *slog.Logger
	now        func() time.Time

	mu sync.RWMutex
}

func NewRepository[T models.Entity](
	logger *slog.Logger,
	root string,
	collection persistence.Collection,
	newEntity func() T,
) *Repository[T] {
	return &Repository[T]{
		root:       root,
		collection: collection,
		newEntity:  newEntity,
		logger:     logger.With("collection", collection.Name),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repository[T]) dir() string {
	return path.Join(r.root, r.collection.Name)
}

func (r *Repository[T]) filePath(id string) (string, bool) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", false
	}

	return filepath.Clean(path.Join(r.dir(), id+".json")), true
}

// List returns paginated and filtered records with in-memory operations.
func (r *Repository[T]) List(ctx context.Context, opts persistence.ListOptions) (*persistence.ListResult[T], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]T, 0, len(all))

	for _, entity := range all {
		ok, err := matches(entity, opts)
		if err != nil {
			return nil, err
		}

		if ok {
			filtered = append(filtered, entity)
		}
	}

	sortEntities(filtered, opts.SortBy, opts.SortOrder)

	return persistence.Paginate(filtered, opts), nil
}

func (r *Repository[T]) loadAll(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	root := os.DirFS(r.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", r.collection.Name, err)
	}

	all := make([]T, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := strings.TrimSuffix(file, ".json")

		entity, err := r.read(id)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping unreadable record", "id", id, "error", err)

			continue
		}

		all = append(all, entity)
	}

	return all, nil
}

func (r *Repository[T]) read(id string) (T, error) {
	var zero T

	filePath, ok := r.filePath(id)
	if !ok {
		return zero, persistence.NotFound("GetByID", r.collection, id)
	}

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, persistence.NotFound("GetByID", r.collection, id)
		}

		return zero, fmt.Errorf("failed to fetch %s %s: %w", r.collection.Name, id, err)
	}

	entity := r.newEntity()
	if err := json.Unmarshal(body, entity); err != nil {
		return zero, fmt.Errorf("failed to unmarshal %s %s: %w", r.collection.Name, id, err)
	}

	return entity, nil
}

// GetByID retrieves a record by its ID from the file system.
func (r *Repository[T]) GetByID(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.read(id)
}

// Save writes a record to the file system.
func (r *Repository[T]) Save(_ context.Context, entity T) error {
	if entity.GetID() == "" {
		entity.SetID(uuid.NewString())
	}

	filePath, ok := r.filePath(entity.GetID())
	if !ok {
		return persistence.NewEntityError("Save", r.collection, entity.GetID(), errInvalidID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.MkdirAll(r.dir(), 0750)
	if err != nil {
		return fmt.Errorf("failed to create %s directory: %w", r.collection.Name, err)
	}

	entity.Stamp(r.now())

	data, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", r.collection.Name, entity.GetID(), err)
	}

	return os.WriteFile(filePath, data, 0600)
}

// Delete removes a record by its ID.
func (r *Repository[T]) Delete(_ context.Context, id string) error {
	filePath, ok := r.filePath(id)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(filePath)

	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.collection.Name, id, err)
	}

	return nil
}

func matches(entity models.Entity, opts persistence.ListOptions) (bool, error) {
	if opts.Search != "" && !strings.Contains(strings.ToLower(entity.GetName()), strings.ToLower(opts.Search)) {
		return false, nil
	}

	if len(opts.Filters) == 0 {
		return true, nil
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return false, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false, err
	}

	for key, want := range opts.Filters {
		value, ok := fields[key]
		if !ok || value == nil || fmt.Sprint(value) != want {
			return false, nil
		}
	}

	return true, nil
}

// sortEntities sorts records in-place based on the specified field and order.
func sortEntities[T models.Entity](entities []T, sortBy, sortOrder string) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if sortOrder == persistence.SortDesc {
			a, b = b, a
		}

		switch sortBy {
		case persistence.SortByUpdatedAt:
			return a.GetUpdatedAt().Before(b.GetUpdatedAt())
		case persistence.SortByName:
			return strings.ToLower(a.GetName()) < strings.ToLower(b.GetName())
		default:
			return a.GetCreatedAt().Before(b.GetCreatedAt())
		}
	})
}
