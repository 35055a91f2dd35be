package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

// Cookies are cross-site (the frontend lives on another origin), so they are
// always SameSite=None and therefore Secure.

// setSessionCookie stores "Bearer <token>" for the lifetime of the browser session.
func setSessionCookie(c *gin.Context, name, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, auth.CookieValue(token), 0, "/", "", true, true)
}

func clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
}

func setCSRFCookie(c *gin.Context, name, signed string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, signed, int(maxAge/time.Second), "/", "", true, true)
}
