package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

// CSRFToken hands out a double-submit token and its signed cookie.
func (h *Handler) CSRFToken(c *gin.Context) {
	token, signed, err := h.csrf.Issue()
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	setCSRFCookie(c, h.csrf.CookieName(), signed, h.csrf.MaxAge())
	c.JSON(http.StatusOK, gin.H{"csrf_token": token})
}

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	user, err := h.authSvc.Signup(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login verifies credentials and starts a cookie session.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	req.ClientIP = c.ClientIP()
	token, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	setSessionCookie(c, h.guard.CookieName(), token)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged-in"})
}

// Logout drops the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.guard.CookieName())
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged-out"})
}

// CurrentUser reports the subject of the verified session.
func (h *Handler) CurrentUser(c *gin.Context) {
	subject, ok := getSubject(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, auth.CodeNoSession, "session subject missing", nil))
		return
	}
	c.JSON(http.StatusOK, auth.UserInfo{Email: subject})
}
