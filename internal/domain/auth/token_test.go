package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/todo-api/pkg/errors"
	"github.com/yanqian/todo-api/pkg/util"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", 0)

	for _, subject := range []string{"a@b.com", "user@example.com", "x"} {
		token, err := codec.Issue(subject)
		require.NoError(t, err)
		got, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, subject, got)
	}
}

func TestTokenCodec_ExpiresAfterFiveMinutes(t *testing.T) {
	now := testNow
	codec := NewTokenCodec("test-secret", 5*time.Minute, WithClock(func() time.Time { return now }))

	token, err := codec.Issue("a@b.com")
	require.NoError(t, err)

	subject, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", subject)

	now = testNow.Add(5*time.Minute - time.Second)
	_, err = codec.Decode(token)
	require.NoError(t, err)

	now = testNow.Add(5*time.Minute + time.Second)
	_, err = codec.Decode(token)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, CodeTokenExpired), "got %v", err)
	require.False(t, apperrors.IsCode(err, CodeTokenInvalid))
	require.Equal(t, "The JWT has expired", apperrors.MessageOf(err))
}

func TestTokenCodec_ExpiredAtBoundary(t *testing.T) {
	issuer := NewTokenCodec("test-secret", time.Minute, WithClock(util.FixedClock(testNow)))
	token, err := issuer.Issue("a@b.com")
	require.NoError(t, err)

	late := NewTokenCodec("test-secret", time.Minute, WithClock(util.FixedClock(testNow.Add(time.Minute))))
	_, err = late.Decode(token)
	require.True(t, apperrors.IsCode(err, CodeTokenExpired), "got %v", err)
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := NewTokenCodec("test-secret", 0)
	token, err := codec.Issue("a@b.com")
	require.NoError(t, err)

	// Flip a character well inside the signature so the decoded bytes change.
	idx := strings.LastIndex(token, ".") + 5
	replacement := byte('A')
	if token[idx] == 'A' {
		replacement = 'B'
	}
	tampered := token[:idx] + string(replacement) + token[idx+1:]

	_, err = codec.Decode(tampered)
	require.True(t, apperrors.IsCode(err, CodeTokenInvalid), "got %v", err)
	require.Equal(t, "JWT is not valid", apperrors.MessageOf(err))
}

func TestTokenCodec_ExpiredAndWrongSecretIsInvalid(t *testing.T) {
	issuer := NewTokenCodec("right-secret", time.Minute, WithClock(util.FixedClock(testNow)))
	token, err := issuer.Issue("a@b.com")
	require.NoError(t, err)

	other := NewTokenCodec("wrong-secret", time.Minute, WithClock(util.FixedClock(testNow.Add(time.Hour))))
	_, err = other.Decode(token)
	require.True(t, apperrors.IsCode(err, CodeTokenInvalid), "got %v", err)
}

func TestTokenCodec_RejectsMalformedAndIncompleteTokens(t *testing.T) {
	codec := NewTokenCodec("test-secret", 0, WithClock(util.FixedClock(testNow)))

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"two parts": "abc.def",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode(token)
			require.True(t, apperrors.IsCode(err, CodeTokenInvalid), "got %v", err)
		})
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "a@b.com",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = codec.Decode(noExpiry)
	require.True(t, apperrors.IsCode(err, CodeTokenInvalid), "got %v", err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = codec.Decode(noSubject)
	require.True(t, apperrors.IsCode(err, CodeTokenInvalid), "got %v", err)
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	codec := NewTokenCodec("test-secret", 0, WithClock(util.FixedClock(testNow)))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.True(t, apperrors.IsCode(err, CodeTokenInvalid), "got %v", err)
}
