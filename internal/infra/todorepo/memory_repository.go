package todorepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/todo-api/internal/domain/todo"
)

// MemoryRepository keeps todos in process memory, preserving insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]todo.Todo
	order []string
	now   func() time.Time
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]todo.Todo),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new todo under a fresh id.
func (r *MemoryRepository) Create(_ context.Context, body todo.Body) (todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := todo.Todo{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		CreatedAt:   r.now(),
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

// List returns at most limit todos, oldest first.
func (r *MemoryRepository) List(_ context.Context, limit int) ([]todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	size := len(r.order)
	if limit > 0 && limit < size {
		size = limit
	}
	out := make([]todo.Todo, 0, size)
	for _, id := range r.order[:size] {
		out = append(out, r.items[id])
	}
	return out, nil
}

// Get fetches one todo.
func (r *MemoryRepository) Get(_ context.Context, id string) (todo.Todo, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok, nil
}

// Update replaces title and description of an existing todo.
func (r *MemoryRepository) Update(_ context.Context, id string, body todo.Body) (todo.Todo, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return todo.Todo{}, false, nil
	}
	item.Title = body.Title
	item.Description = body.Description
	r.items[id] = item
	return item, true, nil
}

// Delete removes a todo, reporting whether it existed.
func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

var _ todo.Repository = (*MemoryRepository)(nil)
