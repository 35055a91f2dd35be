package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/todo-api/internal/domain/auth"
	"github.com/yanqian/todo-api/internal/domain/todo"
	"github.com/yanqian/todo-api/internal/infra/config"
	"github.com/yanqian/todo-api/internal/infra/csrf"
	"github.com/yanqian/todo-api/internal/infra/postgres"
	"github.com/yanqian/todo-api/internal/infra/throttle"
	"github.com/yanqian/todo-api/internal/infra/todorepo"
	"github.com/yanqian/todo-api/internal/infra/userrepo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:            cfg.Auth.JWTSecret,
		TokenTTL:          cfg.Auth.TokenTTL,
		CookieName:        cfg.Auth.CookieName,
		BcryptCost:        cfg.Auth.BcryptCost,
		HashConcurrency:   cfg.Auth.HashConcurrency,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		Login: auth.LoginThrottleConfig{
			MaxAttempts: cfg.Auth.Login.MaxAttempts,
			Window:      cfg.Auth.Login.Window,
		},
	}
}

func provideTodoConfig(cfg *config.Config) todo.Config {
	return todo.Config{ListLimit: cfg.Todo.ListLimit}
}

func provideTokenCodec(cfg auth.Config) *auth.TokenCodec {
	return auth.NewTokenCodec(cfg.Secret, cfg.TokenTTL)
}

func providePasswordHasher(cfg auth.Config) *auth.PasswordHasher {
	return auth.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency)
}

func provideSessionGuard(cfg auth.Config, codec *auth.TokenCodec) *auth.SessionGuard {
	return auth.NewSessionGuard(codec, cfg.CookieName)
}

func provideCSRFProtector(cfg *config.Config) (*csrf.Protector, error) {
	return csrf.NewProtector(csrf.Config{
		Secret:     cfg.CSRF.Secret,
		HeaderName: cfg.CSRF.HeaderName,
		CookieName: cfg.CSRF.CookieName,
		MaxAge:     cfg.CSRF.MaxAge,
	})
}

// providePostgresPool returns a nil pool when no DSN is configured, which
// selects the memory stores. A configured but unreachable database is fatal.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func(), error) {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.Connect(ctx, postgres.PoolConfig{
		DSN:      dsn,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("postgres repositories enabled")
	return pool, pool.Close, nil
}

func provideCredentialStore(pool *pgxpool.Pool) auth.CredentialStore {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideTodoRepository(pool *pgxpool.Pool) todo.Repository {
	if pool == nil {
		return todorepo.NewMemoryRepository()
	}
	return todorepo.NewPostgresRepository(pool)
}

func provideAttemptStore(cfg *config.Config, logger *slog.Logger) (auth.AttemptStore, func()) {
	if cfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return throttle.NewMemoryStore(nil), func() {}
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return throttle.NewMemoryStore(nil), func() {}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("login attempt valkey store enabled", "addr", cfg.Valkey.Addr)
			return throttle.NewValkeyStore(client, cfg.Valkey.Prefix), client.Close
		}
	}
	return throttle.NewMemoryStore(nil), func() {}
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}, nil
}
