//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/todo-api/internal/bootstrap"
	"github.com/yanqian/todo-api/internal/domain/auth"
	"github.com/yanqian/todo-api/internal/domain/todo"
	"github.com/yanqian/todo-api/internal/infra/config"
	"github.com/yanqian/todo-api/internal/infra/csrf"
	httpiface "github.com/yanqian/todo-api/internal/interface/http"
	"github.com/yanqian/todo-api/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideTodoConfig,
		provideTokenCodec,
		providePasswordHasher,
		provideSessionGuard,
		provideCSRFProtector,
		providePostgresPool,
		provideCredentialStore,
		provideTodoRepository,
		provideAttemptStore,
		auth.NewService,
		todo.NewService,
		wire.Bind(new(httpiface.CSRFProtector), new(*csrf.Protector)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
