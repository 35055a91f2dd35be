package auth

import (
	"context"
	"time"
)

// CredentialStore abstracts user persistence.
type CredentialStore interface {
	FindByIdentity(ctx context.Context, identity string) (Credential, bool, error)
	// Insert must fail with ErrEmailExists when identity is already taken.
	Insert(ctx context.Context, identity, passwordHash string) (Credential, error)
}

// AttemptStore counts failed logins per key; a counter expires one window after its first failure.
type AttemptStore interface {
	Failures(ctx context.Context, key string) (int, error)
	// RecordFailure increments the counter, starting the window on the first failure.
	RecordFailure(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}
