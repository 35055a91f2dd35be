// Package csrf implements double-submit CSRF protection: a random token is handed
// to the client in the response body and, signed, in a cookie. Mutating requests
// must echo the token in a header that matches the cookie.
package csrf

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/yanqian/todo-api/internal/domain/auth"
	apperrors "github.com/yanqian/todo-api/pkg/errors"
)

const (
	DefaultHeaderName = "X-CSRF-Token"
	DefaultCookieName = "csrf_token"
	DefaultMaxAge     = time.Hour

	tokenBytes = 32
)

// Config holds the protector settings.
type Config struct {
	Secret     string
	HeaderName string
	CookieName string
	MaxAge     time.Duration
}

// Protector issues and validates CSRF tokens.
type Protector struct {
	codec      *securecookie.SecureCookie
	headerName string
	cookieName string
	maxAge     time.Duration
}

// NewProtector signs cookies with a key derived from cfg.Secret.
func NewProtector(cfg Config) (*Protector, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("csrf secret is required")
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	hashKey := sha256.Sum256([]byte(cfg.Secret))
	codec := securecookie.New(hashKey[:], nil)
	codec.MaxAge(int(cfg.MaxAge / time.Second))
	return &Protector{
		codec:      codec,
		headerName: cfg.HeaderName,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
	}, nil
}

// HeaderName is the request header that must carry the token.
func (p *Protector) HeaderName() string { return p.headerName }

// CookieName is the cookie holding the signed token.
func (p *Protector) CookieName() string { return p.cookieName }

// MaxAge is how long an issued token stays valid.
func (p *Protector) MaxAge() time.Duration { return p.maxAge }

// Issue returns a fresh token and the signed cookie value bound to it.
func (p *Protector) Issue() (string, string, error) {
	token := hex.EncodeToString(securecookie.GenerateRandomKey(tokenBytes))
	if len(token) != tokenBytes*2 {
		return "", "", apperrors.Wrap(auth.CodeAuthError, "Generate CSRF token failed", errors.New("random source exhausted"))
	}
	signed, err := p.codec.Encode(p.cookieName, token)
	if err != nil {
		return "", "", apperrors.Wrap(auth.CodeAuthError, "Generate CSRF token failed", err)
	}
	return token, signed, nil
}

// TokenFromHeaders reads the token echoed by the client.
func (p *Protector) TokenFromHeaders(req auth.Request) (string, error) {
	token := strings.TrimSpace(req.GetHeader(p.headerName))
	if token == "" {
		return "", apperrors.Wrap(auth.CodeCSRFInvalid, "Missing CSRF token in header "+p.headerName, nil)
	}
	return token, nil
}

// Validate checks that token matches the signed copy in the CSRF cookie.
func (p *Protector) Validate(req auth.Request, token string) error {
	raw, err := req.Cookie(p.cookieName)
	if err != nil || raw == "" {
		return apperrors.Wrap(auth.CodeCSRFInvalid, "Missing CSRF cookie", nil)
	}
	var expected string
	if err := p.codec.Decode(p.cookieName, raw, &expected); err != nil {
		return apperrors.Wrap(auth.CodeCSRFInvalid, "The CSRF cookie is invalid or expired", err)
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		return apperrors.Wrap(auth.CodeCSRFInvalid, "The CSRF token does not match", nil)
	}
	return nil
}

var _ auth.CSRFValidator = (*Protector)(nil)
