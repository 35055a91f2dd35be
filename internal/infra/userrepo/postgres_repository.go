package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

const uniqueViolation = "23505"

// PostgresRepository persists credentials in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert adds a user row. The unique index on email turns a concurrent
// duplicate signup into auth.ErrEmailExists.
func (r *PostgresRepository) Insert(ctx context.Context, identity, passwordHash string) (auth.Credential, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`, identity, passwordHash)
	cred, err := scanCredential(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.Credential{}, auth.ErrEmailExists
		}
		return auth.Credential{}, err
	}
	return cred, nil
}

// FindByIdentity fetches a credential by email.
func (r *PostgresRepository) FindByIdentity(ctx context.Context, identity string) (auth.Credential, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, identity)
	cred, err := scanCredential(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Credential{}, false, nil
	}
	if err != nil {
		return auth.Credential{}, false, err
	}
	return cred, true, nil
}

func scanCredential(row pgx.Row) (auth.Credential, error) {
	var cred auth.Credential
	var created time.Time
	if err := row.Scan(&cred.ID, &cred.Identity, &cred.PasswordHash, &created); err != nil {
		return auth.Credential{}, err
	}
	cred.CreatedAt = created.UTC()
	return cred, nil
}

var _ auth.CredentialStore = (*PostgresRepository)(nil)
