package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/todo-api/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Only configured proxies may set the client IP through forwarding headers.
	if err := router.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.CORS.AllowedOrigins, cfg.CSRF.HeaderName),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	gate := sessionGate{guard: handler.guard, csrf: handler.csrf}

	router.GET("/", handler.Root)

	api := router.Group("/api")
	{
		api.GET("/csrftoken", handler.CSRFToken)
		api.POST("/register", gate.requireCSRF(), handler.Register)
		api.POST("/login", gate.requireCSRF(), handler.Login)
		api.POST("/logout", gate.requireCSRF(), handler.Logout)
		api.GET("/user", gate.refreshSession(), handler.CurrentUser)

		api.POST("/todo", gate.requireCSRFAndRefresh(), handler.CreateTodo)
		api.GET("/todo", gate.requireSession(), handler.ListTodos)
		api.GET("/todo/:id", gate.refreshSession(), handler.GetTodo)
		api.PUT("/todo/:id", gate.requireCSRFAndRefresh(), handler.UpdateTodo)
		api.DELETE("/todo/:id", gate.requireCSRFAndRefresh(), handler.DeleteTodo)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
