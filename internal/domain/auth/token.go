package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/yanqian/todo-api/pkg/errors"
	"github.com/yanqian/todo-api/pkg/util"
)

// DefaultTokenTTL bounds how long a stolen session token stays usable.
const DefaultTokenTTL = 5 * time.Minute

// TokenCodec signs and verifies HS256 session tokens bound to a subject.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    util.Clock
}

// CodecOption customises a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(clock util.Clock) CodecOption {
	return func(c *TokenCodec) {
		c.now = clock
	}
}

// NewTokenCodec constructs a codec. A non-positive ttl selects DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration, opts ...CodecOption) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	codec := &TokenCodec{secret: []byte(secret), ttl: ttl, now: util.NowUTC}
	for _, opt := range opts {
		opt(codec)
	}
	return codec
}

// Issue builds a signed token for subject valid from now for the codec TTL.
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrap(CodeAuthError, "failed to sign token", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the token subject.
func (c *TokenCodec) Decode(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperrors.Wrap(CodeTokenInvalid, msgTokenInvalid, nil)
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		// jwt/v5 checks the signature before claims, so expiry implies a valid signature.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.Wrap(CodeTokenExpired, msgTokenExpired, err)
		}
		return "", apperrors.Wrap(CodeTokenInvalid, msgTokenInvalid, err)
	}
	if claims.Subject == "" {
		return "", apperrors.Wrap(CodeTokenInvalid, msgTokenInvalid, errors.New("token missing subject"))
	}
	return claims.Subject, nil
}
