package todorepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/todo-api/internal/domain/todo"
)

// PostgresRepository persists todos in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a todo row.
func (r *PostgresRepository) Create(ctx context.Context, body todo.Body) (todo.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, created_at
	`, body.Title, body.Description)
	return scanTodo(row)
}

// List returns at most limit todos ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]todo.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, created_at
		FROM todos
		ORDER BY created_at, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []todo.Todo
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Get fetches a todo by id. Malformed ids are reported as missing.
func (r *PostgresRepository) Get(ctx context.Context, id string) (todo.Todo, bool, error) {
	key, ok := parseID(id)
	if !ok {
		return todo.Todo{}, false, nil
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, created_at
		FROM todos
		WHERE id = $1
	`, key)
	return foundTodo(scanTodo(row))
}

// Update overwrites title and description.
func (r *PostgresRepository) Update(ctx context.Context, id string, body todo.Body) (todo.Todo, bool, error) {
	key, ok := parseID(id)
	if !ok {
		return todo.Todo{}, false, nil
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING id, title, description, created_at
	`, key, body.Title, body.Description)
	return foundTodo(scanTodo(row))
}

// Delete removes a todo.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	key, ok := parseID(id)
	if !ok {
		return false, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func parseID(id string) (uuid.UUID, bool) {
	key, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return key, true
}

func foundTodo(item todo.Todo, err error) (todo.Todo, bool, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return todo.Todo{}, false, nil
	}
	if err != nil {
		return todo.Todo{}, false, err
	}
	return item, true, nil
}

func scanTodo(row pgx.Row) (todo.Todo, error) {
	var (
		item    todo.Todo
		id      uuid.UUID
		created time.Time
	)
	if err := row.Scan(&id, &item.Title, &item.Description, &created); err != nil {
		return todo.Todo{}, err
	}
	item.ID = id.String()
	item.CreatedAt = created.UTC()
	return item, nil
}

var _ todo.Repository = (*PostgresRepository)(nil)
