package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/todo-api/internal/domain/auth"
	"github.com/yanqian/todo-api/internal/domain/todo"
	apperrors "github.com/yanqian/todo-api/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

var codeStatus = map[string]int{
	auth.CodeNoSession:          http.StatusUnauthorized,
	auth.CodeTokenExpired:       http.StatusUnauthorized,
	auth.CodeTokenInvalid:       http.StatusUnauthorized,
	auth.CodeCSRFInvalid:        http.StatusUnauthorized,
	auth.CodeInvalidCredentials: http.StatusUnauthorized,
	auth.CodeDuplicateIdentity:  http.StatusBadRequest,
	auth.CodeWeakPassword:       http.StatusBadRequest,
	auth.CodeInvalidInput:       http.StatusBadRequest,
	auth.CodeTooManyAttempts:    http.StatusTooManyRequests,
	todo.CodeNotFound:           http.StatusNotFound,
}

// fromAppError maps a domain error onto its HTTP status. Unknown codes are
// reported as 500 without leaking the underlying message.
func fromAppError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	code := apperrors.CodeOf(err)
	if status, ok := codeStatus[code]; ok {
		return NewHTTPError(status, code, apperrors.MessageOf(err), err)
	}
	if code == "" {
		code = "internal_error"
	}
	return NewHTTPError(http.StatusInternalServerError, code, "something went wrong", err)
}

func badRequest(err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, auth.CodeInvalidInput, errMessage(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromAppError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
