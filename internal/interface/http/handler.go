package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/todo-api/internal/domain/auth"
	"github.com/yanqian/todo-api/internal/domain/todo"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc auth.Service
	todoSvc todo.Service
	guard   *auth.SessionGuard
	csrf    CSRFProtector
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(authSvc auth.Service, todoSvc todo.Service, guard *auth.SessionGuard, csrf CSRFProtector, logger *slog.Logger) *Handler {
	return &Handler{
		authSvc: authSvc,
		todoSvc: todoSvc,
		guard:   guard,
		csrf:    csrf,
		logger:  logger.With("component", "http.handler"),
	}
}

// Root greets clients probing the API.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, todo.SuccessMessage{Message: "Welcome to the Todo API"})
}

// CreateTodo adds a task.
func (h *Handler) CreateTodo(c *gin.Context) {
	var body todo.Body
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	created, err := h.todoSvc.Create(c.Request.Context(), body)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListTodos returns the stored tasks.
func (h *Handler) ListTodos(c *gin.Context) {
	items, err := h.todoSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetTodo returns one task.
func (h *Handler) GetTodo(c *gin.Context) {
	item, err := h.todoSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateTodo replaces a task's content.
func (h *Handler) UpdateTodo(c *gin.Context) {
	var body todo.Body
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	item, err := h.todoSvc.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteTodo removes a task.
func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.todoSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, todo.SuccessMessage{Message: "Successfully deleted"})
}
