package todo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/todo-api/pkg/errors"
)

func TestService_CRUD(t *testing.T) {
	svc := NewService(Config{}, newStubRepo(), newTestLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, Body{Title: "  write tests ", Description: "guard first"})
	require.NoError(t, err)
	require.Equal(t, "write tests", created.Title)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	updated, err := svc.Update(ctx, created.ID, Body{Title: "ship", Description: "done"})
	require.NoError(t, err)
	require.Equal(t, "ship", updated.Title)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.True(t, apperrors.IsCode(err, CodeNotFound))
	require.Equal(t, "Task of ID:"+created.ID+" doesn't exist", apperrors.MessageOf(err))
}

func TestService_NotFound(t *testing.T) {
	svc := NewService(Config{}, newStubRepo(), newTestLogger())
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", Body{Title: "x", Description: "y"})
	require.True(t, apperrors.IsCode(err, CodeNotFound))
	require.Equal(t, "Update task failed", apperrors.MessageOf(err))

	err = svc.Delete(ctx, "missing")
	require.True(t, apperrors.IsCode(err, CodeNotFound))
	require.Equal(t, "Delete task failed", apperrors.MessageOf(err))
}

func TestService_ListAppliesLimitAndEmptySlice(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(Config{ListLimit: 2}, repo, newTestLogger())
	ctx := context.Background()

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, Body{Title: "t" + strconv.Itoa(i), Description: "d"})
		require.NoError(t, err)
	}
	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, repo.lastLimit)
}

func TestService_InvalidBody(t *testing.T) {
	svc := NewService(Config{}, newStubRepo(), newTestLogger())
	_, err := svc.Create(context.Background(), Body{Title: "   ", Description: "d"})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
}

func TestService_RepositoryFailure(t *testing.T) {
	repo := newStubRepo()
	repo.err = errors.New("connection reset")
	svc := NewService(Config{}, repo, newTestLogger())

	_, err := svc.Create(context.Background(), Body{Title: "x", Description: "y"})
	require.True(t, apperrors.IsCode(err, CodeTodoError))
	require.ErrorIs(t, err, repo.err)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRepo struct {
	items     map[string]Todo
	order     []string
	seq       int
	lastLimit int
	err       error
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[string]Todo)}
}

func (r *stubRepo) Create(_ context.Context, body Body) (Todo, error) {
	if r.err != nil {
		return Todo{}, r.err
	}
	r.seq++
	item := Todo{ID: strconv.Itoa(r.seq), Title: body.Title, Description: body.Description}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *stubRepo) List(_ context.Context, limit int) ([]Todo, error) {
	r.lastLimit = limit
	var out []Todo
	for _, id := range r.order {
		if item, ok := r.items[id]; ok && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, r.err
}

func (r *stubRepo) Get(_ context.Context, id string) (Todo, bool, error) {
	item, ok := r.items[id]
	return item, ok, r.err
}

func (r *stubRepo) Update(_ context.Context, id string, body Body) (Todo, bool, error) {
	item, ok := r.items[id]
	if !ok {
		return Todo{}, false, r.err
	}
	item.Title = body.Title
	item.Description = body.Description
	r.items[id] = item
	return item, true, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, r.err
}
