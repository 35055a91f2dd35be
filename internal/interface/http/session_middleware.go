package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

// CSRFProtector issues double-submit tokens and validates them on mutating requests.
type CSRFProtector interface {
	auth.CSRFValidator
	Issue() (token, signedCookie string, err error)
	CookieName() string
	MaxAge() time.Duration
}

// sessionGate adapts SessionGuard to gin. Every guarded route goes through
// exactly one of these middlewares; failures abort before the handler runs.
type sessionGate struct {
	guard *auth.SessionGuard
	csrf  CSRFProtector
}

// requireSession verifies the session without reissuing it.
func (g sessionGate) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := g.guard.Verify(c)
		if err != nil {
			abortWithError(c, fromAppError(err))
			return
		}
		setSubject(c, subject)
		c.Next()
	}
}

// refreshSession verifies the session and sets a freshly issued token.
func (g sessionGate) refreshSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, subject, err := g.guard.VerifyAndRefresh(c)
		if err != nil {
			abortWithError(c, fromAppError(err))
			return
		}
		setSessionCookie(c, g.guard.CookieName(), token)
		setSubject(c, subject)
		c.Next()
	}
}

// requireCSRF checks the double-submit token only; used before a session exists.
func (g sessionGate) requireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := g.csrf.TokenFromHeaders(c)
		if err == nil {
			err = g.csrf.Validate(c, token)
		}
		if err != nil {
			abortWithError(c, fromAppError(err))
			return
		}
		c.Next()
	}
}

// requireCSRFAndRefresh guards state-changing requests on an existing session.
func (g sessionGate) requireCSRFAndRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := g.guard.VerifyCSRFAndRefresh(c, g.csrf)
		if err != nil {
			abortWithError(c, fromAppError(err))
			return
		}
		setSessionCookie(c, g.guard.CookieName(), token)
		c.Next()
	}
}
