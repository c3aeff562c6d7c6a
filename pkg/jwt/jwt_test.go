package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	v := NewVerifier("secret", "liveevent-platform")

	token, err := v.Sign("user-1", "user@example.com", "host", time.Minute)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, "host", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewVerifier("secret-a", "liveevent-platform")
	verifier := NewVerifier("secret-b", "liveevent-platform")

	token, err := issuer.Sign("user-1", "", "", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	v := NewVerifier("secret", "liveevent-platform")

	token, err := v.Sign("user-1", "", "", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	other := NewVerifier("secret", "someone-else")
	v := NewVerifier("secret", "liveevent-platform")

	token, err := other.Sign("user-1", "", "", time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewVerifier("secret", "liveevent-platform")
	_, err := v.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingUserID(t *testing.T) {
	v := NewVerifier("secret", "liveevent-platform")

	token, err := v.Sign("", "", "", time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
