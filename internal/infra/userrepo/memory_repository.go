package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

// MemoryRepository provides an in-memory credential store for tests/dev.
type MemoryRepository struct {
	mu          sync.RWMutex
	credentials map[string]auth.Credential
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		credentials: make(map[string]auth.Credential),
	}
}

// Insert stores the credential unless the identity is already registered.
func (r *MemoryRepository) Insert(_ context.Context, identity, passwordHash string) (auth.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.credentials[identity]; exists {
		return auth.Credential{}, auth.ErrEmailExists
	}
	cred := auth.Credential{
		ID:           uuid.NewString(),
		Identity:     identity,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.credentials[identity] = cred
	return cred, nil
}

// FindByIdentity returns the credential registered for identity.
func (r *MemoryRepository) FindByIdentity(_ context.Context, identity string) (auth.Credential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.credentials[identity]
	return cred, ok, nil
}

var _ auth.CredentialStore = (*MemoryRepository)(nil)
