package userrepo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

func TestMemoryRepository_InsertAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	cred, err := repo.Insert(ctx, "alice@example.com", "hash")
	require.NoError(t, err)
	require.NotEmpty(t, cred.ID)
	require.Equal(t, "alice@example.com", cred.Identity)

	found, ok, err := repo.FindByIdentity(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cred, found)

	_, ok, err = repo.FindByIdentity(ctx, "bob@example.com")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryRepository_ConcurrentDuplicateInsert(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(ctx, "race@example.com", "hash")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if err == auth.ErrEmailExists {
				dupes++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, dupes)
}
