package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap("auth_error", "failed to sign token", cause)

	require.True(t, IsCode(err, "auth_error"))
	require.False(t, IsCode(err, "token_invalid"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to sign token: boom", err.Error())
	require.Equal(t, "failed to sign token", MessageOf(err))
}

func TestCodeOf_WrappedChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap("no_session", "no cookie", nil))
	require.Equal(t, "no_session", CodeOf(err))
	require.Equal(t, "no cookie", MessageOf(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	err := errors.New("plain")
	require.Equal(t, "", CodeOf(err))
	require.False(t, IsCode(err, ""))
	require.Equal(t, "plain", MessageOf(err))
	require.Equal(t, "", MessageOf(nil))
}
