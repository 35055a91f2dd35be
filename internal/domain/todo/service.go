package todo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/todo-api/pkg/errors"
)

// Error codes returned by the todo service.
const (
	CodeNotFound     = "not_found"
	CodeInvalidInput = "invalid_input"
	CodeTodoError    = "todo_error"
)

// Service exposes todo CRUD.
type Service interface {
	Create(ctx context.Context, body Body) (Todo, error)
	List(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id string) (Todo, error)
	Update(ctx context.Context, id string, body Body) (Todo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultListLimit
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "todo.service"),
	}
}

func (s *service) Create(ctx context.Context, body Body) (Todo, error) {
	body, err := normalizeBody(body)
	if err != nil {
		return Todo{}, err
	}
	created, err := s.repo.Create(ctx, body)
	if err != nil {
		return Todo{}, apperrors.Wrap(CodeTodoError, "Create task failed", err)
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]Todo, error) {
	items, err := s.repo.List(ctx, s.cfg.ListLimit)
	if err != nil {
		return nil, apperrors.Wrap(CodeTodoError, "failed to list tasks", err)
	}
	if items == nil {
		items = []Todo{}
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id string) (Todo, error) {
	item, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Todo{}, apperrors.Wrap(CodeTodoError, "failed to load task", err)
	}
	if !found {
		return Todo{}, apperrors.Wrap(CodeNotFound, fmt.Sprintf("Task of ID:%s doesn't exist", id), nil)
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, id string, body Body) (Todo, error) {
	body, err := normalizeBody(body)
	if err != nil {
		return Todo{}, err
	}
	item, found, err := s.repo.Update(ctx, id, body)
	if err != nil {
		return Todo{}, apperrors.Wrap(CodeTodoError, "Update task failed", err)
	}
	if !found {
		return Todo{}, apperrors.Wrap(CodeNotFound, "Update task failed", nil)
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(CodeTodoError, "Delete task failed", err)
	}
	if !found {
		return apperrors.Wrap(CodeNotFound, "Delete task failed", nil)
	}
	s.logger.Debug("task deleted", "todo_id", id)
	return nil
}

func normalizeBody(body Body) (Body, error) {
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return Body{}, apperrors.Wrap(CodeInvalidInput, "title cannot be empty", nil)
	}
	return body, nil
}
