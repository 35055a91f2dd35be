package todo

import "time"

// DefaultListLimit caps the number of todos returned by List.
const DefaultListLimit = 100

// Config tunes the todo service.
type Config struct {
	ListLimit int
}

// Todo is a stored task.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// Body is the client supplied content of a todo.
type Body struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// SuccessMessage is returned by endpoints without a resource payload.
type SuccessMessage struct {
	Message string `json:"message"`
}
