package todo

import "context"

// Repository abstracts todo persistence. Lookups by an unknown or malformed id
// report found=false rather than an error.
type Repository interface {
	Create(ctx context.Context, body Body) (Todo, error)
	List(ctx context.Context, limit int) ([]Todo, error)
	Get(ctx context.Context, id string) (Todo, bool, error)
	Update(ctx context.Context, id string, body Body) (Todo, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
