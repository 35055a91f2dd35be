package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/todo-api/pkg/errors"
)

// DefaultMinPasswordLength is the shortest password signup accepts.
const DefaultMinPasswordLength = 6

// Service exposes the credential workflows that precede a session.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (UserInfo, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
}

type service struct {
	cfg      Config
	store    CredentialStore
	attempts AttemptStore
	hasher   *PasswordHasher
	codec    *TokenCodec
	logger   *slog.Logger
}

// NewService constructs a Service instance. attempts may be nil to disable login throttling.
func NewService(cfg Config, store CredentialStore, attempts AttemptStore, hasher *PasswordHasher, codec *TokenCodec, logger *slog.Logger) Service {
	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = DefaultMinPasswordLength
	}
	return &service{
		cfg:      cfg,
		store:    store,
		attempts: attempts,
		hasher:   hasher,
		codec:    codec,
		logger:   logger.With("component", "auth.service"),
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (UserInfo, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return UserInfo{}, apperrors.Wrap(CodeInvalidInput, "invalid email address", err)
	}
	_, exists, err := s.store.FindByIdentity(ctx, email)
	if err != nil {
		return UserInfo{}, apperrors.Wrap(CodeAuthError, "failed to check user", err)
	}
	if exists {
		return UserInfo{}, apperrors.Wrap(CodeDuplicateIdentity, msgDuplicateIdentity, nil)
	}
	if utf8.RuneCountInString(req.Password) < s.cfg.MinPasswordLength {
		return UserInfo{}, apperrors.Wrap(CodeWeakPassword, msgWeakPassword, nil)
	}
	if len(req.Password) > MaxPasswordBytes {
		return UserInfo{}, apperrors.Wrap(CodeInvalidInput, msgPasswordTooLong, nil)
	}
	hashed, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return UserInfo{}, apperrors.Wrap(CodeAuthError, "failed to hash password", err)
	}
	cred, err := s.store.Insert(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return UserInfo{}, apperrors.Wrap(CodeDuplicateIdentity, msgDuplicateIdentity, err)
		}
		return UserInfo{}, apperrors.Wrap(CodeAuthError, "failed to create user", err)
	}
	s.logger.Info("user signed up", "user_id", cred.ID)
	return UserInfo{ID: cred.ID, Email: cred.Identity}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := s.checkThrottle(ctx, req.ClientIP); err != nil {
		return "", err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return "", s.loginFailed(ctx, req.ClientIP)
	}
	cred, found, err := s.store.FindByIdentity(ctx, email)
	if err != nil {
		return "", apperrors.Wrap(CodeAuthError, "failed to fetch user", err)
	}
	if !found || !s.hasher.Verify(ctx, req.Password, cred.PasswordHash) {
		return "", s.loginFailed(ctx, req.ClientIP)
	}
	s.resetThrottle(ctx, req.ClientIP)
	return s.codec.Issue(cred.Identity)
}

func (s *service) checkThrottle(ctx context.Context, key string) error {
	if s.attempts == nil || key == "" || s.cfg.Login.MaxAttempts <= 0 {
		return nil
	}
	failures, err := s.attempts.Failures(ctx, key)
	if err != nil {
		s.logger.Warn("login throttle lookup failed", "error", err)
		return nil
	}
	if failures >= s.cfg.Login.MaxAttempts {
		return apperrors.Wrap(CodeTooManyAttempts, msgTooManyAttempts, nil)
	}
	return nil
}

func (s *service) loginFailed(ctx context.Context, key string) error {
	if s.attempts != nil && key != "" && s.cfg.Login.MaxAttempts > 0 {
		count, err := s.attempts.RecordFailure(ctx, key, s.cfg.Login.Window)
		if err != nil {
			s.logger.Warn("failed to record login failure", "error", err)
		} else if count >= s.cfg.Login.MaxAttempts {
			s.logger.Warn("login locked", "client_ip", key, "failures", count)
		}
	}
	return apperrors.Wrap(CodeInvalidCredentials, msgInvalidCredentials, nil)
}

func (s *service) resetThrottle(ctx context.Context, key string) {
	if s.attempts == nil || key == "" {
		return
	}
	if err := s.attempts.Reset(ctx, key); err != nil {
		s.logger.Warn("failed to reset login failures", "error", err)
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}
