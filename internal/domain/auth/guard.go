package auth

import (
	"strings"

	apperrors "github.com/yanqian/todo-api/pkg/errors"
)

// DefaultCookieName is the session cookie carrying "Bearer <token>".
const DefaultCookieName = "access_token"

// Request is the part of an inbound HTTP request the guard reads.
// *gin.Context satisfies it.
type Request interface {
	Cookie(name string) (string, error)
	GetHeader(key string) string
}

// CSRFValidator extracts and validates the double-submit CSRF token of a request.
// Both methods fail with code CodeCSRFInvalid.
type CSRFValidator interface {
	TokenFromHeaders(req Request) (string, error)
	Validate(req Request, token string) error
}

// SessionGuard verifies session cookies and reissues tokens on every
// successful authenticated request. It holds no per-request state.
type SessionGuard struct {
	codec      *TokenCodec
	cookieName string
}

// NewSessionGuard wires the guard to a codec. Empty cookieName selects DefaultCookieName.
func NewSessionGuard(codec *TokenCodec, cookieName string) *SessionGuard {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &SessionGuard{codec: codec, cookieName: cookieName}
}

// CookieName reports the session cookie the guard reads.
func (g *SessionGuard) CookieName() string {
	return g.cookieName
}

// Verify returns the subject of the request's session token.
func (g *SessionGuard) Verify(req Request) (string, error) {
	raw, err := req.Cookie(g.cookieName)
	if err != nil || strings.TrimSpace(raw) == "" {
		return "", apperrors.Wrap(CodeNoSession, msgNoSession, nil)
	}
	return g.codec.Decode(tokenFromCookie(raw))
}

// VerifyAndRefresh verifies the session and issues a fresh token for the same subject.
func (g *SessionGuard) VerifyAndRefresh(req Request) (string, string, error) {
	subject, err := g.Verify(req)
	if err != nil {
		return "", "", err
	}
	token, err := g.codec.Issue(subject)
	if err != nil {
		return "", "", err
	}
	return token, subject, nil
}

// VerifyCSRFAndRefresh is the gate for state-changing requests: the CSRF token
// must validate and the session must verify before a fresh token is issued.
func (g *SessionGuard) VerifyCSRFAndRefresh(req Request, csrf CSRFValidator) (string, error) {
	csrfToken, err := csrf.TokenFromHeaders(req)
	if err != nil {
		return "", err
	}
	if err := csrf.Validate(req, csrfToken); err != nil {
		return "", err
	}
	token, _, err := g.VerifyAndRefresh(req)
	return token, err
}

// CookieValue renders a token the way the session cookie stores it.
func CookieValue(token string) string {
	return "Bearer " + token
}

// tokenFromCookie strips the scheme: the token is everything after the first
// space. A value without a space is taken as a bare token.
func tokenFromCookie(raw string) string {
	if _, token, found := strings.Cut(raw, " "); found {
		return token
	}
	return raw
}
